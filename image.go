package twocaptcha

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Normal solves a classic image-to-text captcha. File accepts a local path,
// a raw base64 blob, or an http(s) URL.
type Normal struct {
	File string

	Phrase        bool // answer contains several words
	CaseSensitive bool
	Calc          bool // answer is the result of an arithmetic expression
	Numeric       int  // 1 digits only .. 4 both letters and digits required
	MinLen        int
	MaxLen        int
	Lang          string
	HintText      string
	HintImage     string
}

func (c *Normal) Payload() (map[string]string, map[string][]byte, error) {
	params, files, err := fileParams(c.File)
	if err != nil {
		return nil, nil, err
	}

	setFlag(params, "phrase", c.Phrase)
	setFlag(params, "regsense", c.CaseSensitive)
	setFlag(params, "calc", c.Calc)
	setInt(params, "numeric", c.Numeric)
	setInt(params, "min_len", c.MinLen)
	setInt(params, "max_len", c.MaxLen)
	setIf(params, "lang", c.Lang)
	if err := applyHints(params, files, c.HintText, c.HintImage); err != nil {
		return nil, nil, err
	}
	return params, files, nil
}

// Text solves a text riddle ("what is 2+2?") with a human answer.
type Text struct {
	Text string
	Lang string
}

func (c *Text) Payload() (map[string]string, map[string][]byte, error) {
	if c.Text == "" {
		return nil, nil, &ValidationError{Field: "Text", Reason: "required"}
	}
	params := map[string]string{
		"method":      "post",
		"textcaptcha": c.Text,
	}
	setIf(params, "lang", c.Lang)
	return params, nil, nil
}

// audioLangs are the languages the vendor's audio workers accept.
var audioLangs = map[string]bool{
	"en": true, "ru": true, "de": true, "el": true, "pt": true, "fr": true,
}

// Audio solves an mp3 audio captcha. File accepts a local .mp3 path, a raw
// base64 blob, or an http(s) URL ending in .mp3.
type Audio struct {
	File string
	Lang string
}

func (c *Audio) Payload() (map[string]string, map[string][]byte, error) {
	if c.File == "" {
		return nil, nil, &ValidationError{Field: "File", Reason: "required"}
	}
	if !audioLangs[c.Lang] {
		return nil, nil, &ValidationError{Field: "Lang", Reason: "must be one of en, ru, de, el, pt, fr"}
	}

	var body string
	switch {
	case looksBase64(c.File):
		body = c.File
	case isURL(c.File) && strings.HasSuffix(c.File, ".mp3"):
		content, err := fetchFile(c.File)
		if err != nil {
			return nil, nil, err
		}
		body = base64.StdEncoding.EncodeToString(content)
	case strings.HasSuffix(c.File, ".mp3"):
		content, err := os.ReadFile(c.File)
		if err != nil {
			return nil, nil, &ValidationError{Field: "File", Reason: fmt.Sprintf("unreadable file %s: %v", c.File, err)}
		}
		body = base64.StdEncoding.EncodeToString(content)
	default:
		return nil, nil, &ValidationError{Field: "File", Reason: "not an .mp3 file or a base64 blob"}
	}

	return map[string]string{
		"method": "audio",
		"body":   body,
		"lang":   c.Lang,
	}, nil, nil
}

// Grid solves a grid-select image captcha ("click all squares with...").
type Grid struct {
	File string

	Rows      int
	Cols      int
	CanSkip   bool // the image may contain no matching cells
	Lang      string
	HintText  string
	HintImage string
}

func (c *Grid) Payload() (map[string]string, map[string][]byte, error) {
	params, files, err := fileParams(c.File)
	if err != nil {
		return nil, nil, err
	}

	params["recaptcha"] = "1"
	setInt(params, "recaptcharows", c.Rows)
	setInt(params, "recaptchacols", c.Cols)
	setFlag(params, "can_no_answer", c.CanSkip)
	setIf(params, "lang", c.Lang)
	if err := applyHints(params, files, c.HintText, c.HintImage); err != nil {
		return nil, nil, err
	}
	return params, files, nil
}

// Canvas solves a draw-around captcha. At least one hint is mandatory: the
// worker has to be told what to outline.
type Canvas struct {
	File string

	HintText  string
	HintImage string
	Lang      string
}

func (c *Canvas) Payload() (map[string]string, map[string][]byte, error) {
	if c.HintText == "" && c.HintImage == "" {
		return nil, nil, &ValidationError{Field: "HintText", Reason: "HintText and/or HintImage required"}
	}

	params, files, err := fileParams(c.File)
	if err != nil {
		return nil, nil, err
	}

	params["recaptcha"] = "1"
	params["canvas"] = "1"
	setIf(params, "lang", c.Lang)
	if err := applyHints(params, files, c.HintText, c.HintImage); err != nil {
		return nil, nil, err
	}
	return params, files, nil
}

// Coordinates solves a click-on-points captcha; the answer is a list of x/y
// pairs returned as raw JSON in Result.Code.
type Coordinates struct {
	File string

	Lang      string
	HintText  string
	HintImage string
}

func (c *Coordinates) Payload() (map[string]string, map[string][]byte, error) {
	params, files, err := fileParams(c.File)
	if err != nil {
		return nil, nil, err
	}

	params["coordinatescaptcha"] = "1"
	setIf(params, "lang", c.Lang)
	if err := applyHints(params, files, c.HintText, c.HintImage); err != nil {
		return nil, nil, err
	}
	return params, files, nil
}

// Rotate solves rotate-to-upright captchas, one or several images per task.
type Rotate struct {
	Files []string

	// Angle is one rotation step in degrees; the vendor default is 40.
	Angle     int
	HintText  string
	HintImage string
}

func (c *Rotate) Payload() (map[string]string, map[string][]byte, error) {
	if len(c.Files) == 0 {
		return nil, nil, &ValidationError{Field: "Files", Reason: "required"}
	}
	if len(c.Files) > maxRotateFiles {
		return nil, nil, &ValidationError{Field: "Files", Reason: fmt.Sprintf("too many files (max %d)", maxRotateFiles)}
	}

	params := map[string]string{"method": "rotatecaptcha"}
	files := map[string][]byte{}
	for i, path := range c.Files {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, &ValidationError{Field: "Files", Reason: fmt.Sprintf("unreadable file %s: %v", path, err)}
		}
		field := "file"
		if len(c.Files) > 1 {
			field = "file_" + strconv.Itoa(i+1)
		}
		files[field] = content
	}

	setInt(params, "angle", c.Angle)
	if err := applyHints(params, files, c.HintText, c.HintImage); err != nil {
		return nil, nil, err
	}
	return params, files, nil
}
