package aws_test

import (
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func putInput(table, wilaya string) *dyn.PutItemInput {
	return &dyn.PutItemInput{
		TableName: &table,
		Item: map[string]types.AttributeValue{
			"wilaya": &types.AttributeValueMemberS{Value: wilaya},
		},
	}
}
