package twocaptcha

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"resty.dev/v3"
)

// maxRotateFiles is the vendor limit for one rotate task.
const maxRotateFiles = 9

// fileHTTP downloads remote captcha images referenced by URL.
var fileHTTP = resty.New().SetTimeout(30 * time.Second)

// fileParams resolves an image input, which may be a raw base64 blob, an
// http(s) URL, or a local file path. Base64 and URL inputs go in the form
// body; local files are attached for multipart upload.
func fileParams(input string) (map[string]string, map[string][]byte, error) {
	switch {
	case input == "":
		return nil, nil, &ValidationError{Field: "File", Reason: "required"}

	case looksBase64(input):
		return map[string]string{"method": "base64", "body": input}, map[string][]byte{}, nil

	case isURL(input):
		content, err := fetchFile(input)
		if err != nil {
			return nil, nil, err
		}
		return map[string]string{
			"method": "base64",
			"body":   base64.StdEncoding.EncodeToString(content),
		}, map[string][]byte{}, nil

	default:
		content, err := os.ReadFile(input)
		if err != nil {
			return nil, nil, &ValidationError{Field: "File", Reason: fmt.Sprintf("unreadable file %s: %v", input, err)}
		}
		return map[string]string{"method": "post"}, map[string][]byte{"file": content}, nil
	}
}

// looksBase64 follows the vendor convention: no dot, and longer than any
// plausible file name.
func looksBase64(s string) bool {
	return !strings.Contains(s, ".") && len(s) > 50
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func fetchFile(url string) ([]byte, error) {
	resp, err := fileHTTP.R().Get(url)
	if err != nil {
		return nil, &NetworkError{Op: "download " + url, Err: err}
	}
	if resp.IsError() {
		return nil, &ValidationError{
			Field:  "File",
			Reason: fmt.Sprintf("could not download %s: HTTP %d", url, resp.StatusCode()),
		}
	}
	return []byte(resp.String()), nil
}

// applyHints adds the solver instructions. A hint image may be a base64 blob
// or a local file attached alongside the captcha image.
func applyHints(params map[string]string, files map[string][]byte, text, img string) error {
	setIf(params, "textinstructions", text)
	if img == "" {
		return nil
	}
	if looksBase64(img) {
		params["imginstructions"] = img
		return nil
	}
	content, err := os.ReadFile(img)
	if err != nil {
		return &ValidationError{Field: "HintImage", Reason: fmt.Sprintf("unreadable file %s: %v", img, err)}
	}
	files["imginstructions"] = content
	return nil
}
