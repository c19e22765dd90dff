package twocaptcha

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg"

func TestReCaptchaV3Payload(t *testing.T) {
	c := &ReCaptcha{
		SiteKey:  "6LfB5_IbAAAAAMCtsjEHEHKqcB9iQocwwxTiihJu",
		PageURL:  "https://example.com",
		Version:  "v3",
		MinScore: 0.3,
	}

	params, files, err := c.Payload()
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Equal(t, map[string]string{
		"method":    "userrecaptcha",
		"version":   "v3",
		"googlekey": "6LfB5_IbAAAAAMCtsjEHEHKqcB9iQocwwxTiihJu",
		"pageurl":   "https://example.com",
		"min_score": "0.3",
	}, params)
}

func TestReCaptchaDefaultsToV2(t *testing.T) {
	c := &ReCaptcha{SiteKey: "sitekey", PageURL: "https://example.com"}

	params, _, err := c.Payload()
	require.NoError(t, err)
	assert.Equal(t, "v2", params["version"])
	assert.NotContains(t, params, "enterprise")
	assert.NotContains(t, params, "min_score")
}

func TestReCaptchaEnterpriseProxy(t *testing.T) {
	c := &ReCaptcha{
		SiteKey:    "sitekey",
		PageURL:    "https://example.com",
		Enterprise: true,
		DataS:      "blob",
		Proxy:      &Proxy{Type: "HTTPS", URI: "user:pass@10.0.0.1:3128"},
	}

	params, _, err := c.Payload()
	require.NoError(t, err)
	assert.Equal(t, "1", params["enterprise"])
	assert.Equal(t, "blob", params["data-s"])
	assert.Equal(t, "user:pass@10.0.0.1:3128", params["proxy"])
	assert.Equal(t, "HTTPS", params["proxytype"])
}

func TestSiteKeyValidation(t *testing.T) {
	tests := []struct {
		name    string
		captcha Captcha
		field   string
	}{
		{"recaptcha missing sitekey", &ReCaptcha{PageURL: "https://example.com"}, "SiteKey"},
		{"recaptcha missing url", &ReCaptcha{SiteKey: "k"}, "PageURL"},
		{"hcaptcha missing sitekey", &HCaptcha{PageURL: "https://example.com"}, "SiteKey"},
		{"funcaptcha missing key", &FunCaptcha{PageURL: "https://example.com"}, "PublicKey"},
		{"geetest missing challenge", &GeeTest{GT: "gt", PageURL: "https://example.com"}, "Challenge"},
		{"geetest4 missing id", &GeeTestV4{PageURL: "https://example.com"}, "CaptchaID"},
		{"keycaptcha missing sign", &KeyCaptcha{UserID: "1", SessionID: "2", WebServerSign2: "4", PageURL: "u"}, "WebServerSign"},
		{"turnstile missing sitekey", &Turnstile{PageURL: "https://example.com"}, "SiteKey"},
		{"amazon missing iv", &AmazonWAF{SiteKey: "k", Context: "c", PageURL: "u"}, "IV"},
		{"datadome missing ua", &DataDome{CaptchaURL: "cu", PageURL: "u"}, "UserAgent"},
		{"cybersiara missing master", &CyberSiARA{PageURL: "u", UserAgent: "ua"}, "MasterURLID"},
		{"lemin missing div", &Lemin{CaptchaID: "id", PageURL: "u"}, "DivID"},
		{"cutcaptcha missing misery", &CutCaptcha{APIKey: "k", PageURL: "u"}, "MiseryKey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.captcha.Payload()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestDataDomeRequiresProxy(t *testing.T) {
	c := &DataDome{CaptchaURL: "cu", PageURL: "u", UserAgent: "ua"}
	_, _, err := c.Payload()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Proxy", verr.Field)
}

func TestFunCaptchaDataParams(t *testing.T) {
	c := &FunCaptcha{
		PublicKey: "pk",
		PageURL:   "https://example.com",
		Data:      map[string]string{"blob": "sessiontoken"},
	}

	params, _, err := c.Payload()
	require.NoError(t, err)
	assert.Equal(t, "funcaptcha", params["method"])
	assert.Equal(t, "sessiontoken", params["data[blob]"])
}

func TestSiteKeyMethodTags(t *testing.T) {
	tests := []struct {
		captcha Captcha
		method  string
	}{
		{&HCaptcha{SiteKey: "k", PageURL: "u"}, "hcaptcha"},
		{&GeeTest{GT: "g", Challenge: "c", PageURL: "u"}, "geetest"},
		{&GeeTestV4{CaptchaID: "i", PageURL: "u"}, "geetest_v4"},
		{&Capy{SiteKey: "k", PageURL: "u"}, "capy"},
		{&Turnstile{SiteKey: "k", PageURL: "u"}, "turnstile"},
		{&AmazonWAF{SiteKey: "k", IV: "i", Context: "c", PageURL: "u"}, "amazon_waf"},
		{&MTCaptcha{SiteKey: "k", PageURL: "u"}, "mt_captcha"},
		{&FriendlyCaptcha{SiteKey: "k", PageURL: "u"}, "friendly_captcha"},
		{&Tencent{AppID: "a", PageURL: "u"}, "tencent"},
		{&AtbCaptcha{AppID: "a", APIServer: "s", PageURL: "u"}, "atb_captcha"},
		{&CutCaptcha{MiseryKey: "m", APIKey: "k", PageURL: "u"}, "cutcaptcha"},
		{&CyberSiARA{MasterURLID: "m", PageURL: "u", UserAgent: "ua"}, "cybersiara"},
		{&YandexSmart{SiteKey: "k", PageURL: "u"}, "yandex"},
		{&Lemin{CaptchaID: "i", DivID: "d", PageURL: "u"}, "lemin"},
		{&KeyCaptcha{UserID: "1", SessionID: "2", WebServerSign: "3", WebServerSign2: "4", PageURL: "u"}, "keycaptcha"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			params, _, err := tt.captcha.Payload()
			require.NoError(t, err)
			assert.Equal(t, tt.method, params["method"])
			assert.Equal(t, "u", params["pageurl"])
		})
	}
}

func TestNormalBase64(t *testing.T) {
	c := &Normal{File: testBase64, CaseSensitive: true, MinLen: 4, MaxLen: 6}

	params, files, err := c.Payload()
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Equal(t, "base64", params["method"])
	assert.Equal(t, testBase64, params["body"])
	assert.Equal(t, "1", params["regsense"])
	assert.Equal(t, "4", params["min_len"])
	assert.Equal(t, "6", params["max_len"])
}

func TestNormalFileUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "captcha.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o644))

	c := &Normal{File: path, HintText: "type the red digits"}

	params, files, err := c.Payload()
	require.NoError(t, err)
	assert.Equal(t, "post", params["method"])
	assert.Equal(t, "type the red digits", params["textinstructions"])
	assert.Equal(t, []byte("png-bytes"), files["file"])
}

func TestNormalUnreadableFile(t *testing.T) {
	c := &Normal{File: filepath.Join(t.TempDir(), "missing.png")}

	_, _, err := c.Payload()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Reason, "unreadable file")
}

func TestTextPayload(t *testing.T) {
	c := &Text{Text: "If tomorrow is Saturday, what day is today?", Lang: "en"}

	params, _, err := c.Payload()
	require.NoError(t, err)
	assert.Equal(t, "post", params["method"])
	assert.Equal(t, c.Text, params["textcaptcha"])
	assert.Equal(t, "en", params["lang"])
}

func TestAudioValidation(t *testing.T) {
	_, _, err := (&Audio{File: testBase64, Lang: "jp"}).Payload()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Lang", verr.Field)

	_, _, err = (&Audio{File: "sound.wav", Lang: "en"}).Payload()
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "File", verr.Field)

	params, _, err := (&Audio{File: testBase64, Lang: "en"}).Payload()
	require.NoError(t, err)
	assert.Equal(t, "audio", params["method"])
	assert.Equal(t, testBase64, params["body"])
}

func TestGridPayload(t *testing.T) {
	c := &Grid{File: testBase64, Rows: 3, Cols: 3, CanSkip: true, HintText: "select all traffic lights"}

	params, _, err := c.Payload()
	require.NoError(t, err)
	assert.Equal(t, "1", params["recaptcha"])
	assert.Equal(t, "3", params["recaptcharows"])
	assert.Equal(t, "3", params["recaptchacols"])
	assert.Equal(t, "1", params["can_no_answer"])
	assert.Equal(t, "select all traffic lights", params["textinstructions"])
}

func TestCanvasRequiresHint(t *testing.T) {
	_, _, err := (&Canvas{File: testBase64}).Payload()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	params, _, err := (&Canvas{File: testBase64, HintText: "outline the dog"}).Payload()
	require.NoError(t, err)
	assert.Equal(t, "1", params["canvas"])
	assert.Equal(t, "1", params["recaptcha"])
}

func TestCoordinatesPayload(t *testing.T) {
	params, _, err := (&Coordinates{File: testBase64, HintText: "click the center of each star"}).Payload()
	require.NoError(t, err)
	assert.Equal(t, "1", params["coordinatescaptcha"])
	assert.Equal(t, "base64", params["method"])
}

func TestRotatePayload(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(name), 0o644))
		paths = append(paths, p)
	}

	params, files, err := (&Rotate{Files: paths[:1], Angle: 40}).Payload()
	require.NoError(t, err)
	assert.Equal(t, "rotatecaptcha", params["method"])
	assert.Equal(t, "40", params["angle"])
	assert.Contains(t, files, "file")

	_, files, err = (&Rotate{Files: paths}).Payload()
	require.NoError(t, err)
	assert.Len(t, files, 3)
	assert.Contains(t, files, "file_1")
	assert.Contains(t, files, "file_3")
}

func TestRotateTooManyFiles(t *testing.T) {
	files := make([]string, maxRotateFiles+1)
	for i := range files {
		files[i] = "x.png"
	}

	_, _, err := (&Rotate{Files: files}).Payload()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, strings.Contains(verr.Reason, "too many files"))
}

func TestLooksBase64(t *testing.T) {
	assert.True(t, looksBase64(testBase64))
	assert.False(t, looksBase64("captcha.png"))
	assert.False(t, looksBase64("short"))
}
