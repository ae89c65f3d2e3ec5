package media

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Signed talks to a hosted media API that authenticates each request with a
// timestamped signature: sha1 of the sorted "k=v&k=v" parameters followed by
// the API secret.
type Signed struct {
	UploadURL string
	DeleteURL string
	APIKey    string
	APISecret string
	Folder    string

	HTTP    *http.Client
	nowFunc func() time.Time
}

// NewSigned returns a signed-upload client with a 30s HTTP timeout.
func NewSigned(uploadURL, deleteURL, apiKey, apiSecret, folder string) *Signed {
	return &Signed{
		UploadURL: uploadURL,
		DeleteURL: deleteURL,
		APIKey:    apiKey,
		APISecret: apiSecret,
		Folder:    folder,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
		nowFunc:   time.Now,
	}
}

// Sign returns the signature for params.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "&") + secret))
	return hex.EncodeToString(sum[:])
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *Signed) Upload(ctx context.Context, filename, contentType string, body io.Reader) (Asset, error) {
	params := map[string]string{
		"timestamp": strconv.FormatInt(s.nowFunc().Unix(), 10),
	}
	if s.Folder != "" {
		params["folder"] = s.Folder
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return Asset{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, body); err != nil {
		return Asset{}, fmt.Errorf("copy upload: %w", err)
	}
	for k, v := range params {
		_ = mw.WriteField(k, v)
	}
	_ = mw.WriteField("api_key", s.APIKey)
	_ = mw.WriteField("signature", Sign(params, s.APISecret))
	if err := mw.Close(); err != nil {
		return Asset{}, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.UploadURL, &buf)
	if err != nil {
		return Asset{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out uploadResponse
	if err := s.do(req, &out); err != nil {
		return Asset{}, err
	}
	u := out.SecureURL
	if u == "" {
		u = out.URL
	}
	if u == "" || out.PublicID == "" {
		return Asset{}, fmt.Errorf("media api: incomplete upload response")
	}
	return Asset{URL: u, PublicID: out.PublicID}, nil
}

func (s *Signed) Delete(ctx context.Context, publicID string) error {
	params := map[string]string{
		"public_id": publicID,
		"timestamp": strconv.FormatInt(s.nowFunc().Unix(), 10),
	}
	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	form.Set("api_key", s.APIKey)
	form.Set("signature", Sign(params, s.APISecret))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.DeleteURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out struct {
		Result string `json:"result"`
	}
	if err := s.do(req, &out); err != nil {
		return err
	}
	if out.Result == "not found" {
		return ErrNotFound
	}
	return nil
}

func (s *Signed) do(req *http.Request, out interface{}) error {
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("media api: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("media api: read body: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("media api: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("media api: decode response: %w", err)
	}
	return nil
}
