package twocaptcha

import "strconv"

// Captcha is one solvable task. Payload validates the caller input and maps
// it to the vendor form parameters, plus any binary attachments for multipart
// upload. Bad input surfaces as *ValidationError before any network call.
//
// All captcha types in this package are plain parameter structs; submission
// and polling are shared, so adding a type means adding a struct, not a
// pipeline.
type Captcha interface {
	Payload() (params map[string]string, files map[string][]byte, err error)
}

// Proxy routes the vendor's solving browser through the caller's proxy, for
// captcha types that bind the answer to the requesting IP.
type Proxy struct {
	Type string // HTTP, HTTPS, SOCKS4, SOCKS5
	URI  string // login:password@host:port
}

func (p *Proxy) apply(params map[string]string) {
	if p == nil {
		return
	}
	params["proxy"] = p.URI
	params["proxytype"] = p.Type
}

// setIf adds a param only when the value is non-empty.
func setIf(params map[string]string, key, value string) {
	if value != "" {
		params[key] = value
	}
}

// setFlag adds key=1 only when the flag is set.
func setFlag(params map[string]string, key string, v bool) {
	if v {
		params[key] = "1"
	}
}

// setInt adds a param only when the value is positive.
func setInt(params map[string]string, key string, v int) {
	if v > 0 {
		params[key] = strconv.Itoa(v)
	}
}

// requireFields checks name/value pairs in order and reports the first missing one.
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return &ValidationError{Field: pairs[i], Reason: "required"}
		}
	}
	return nil
}
