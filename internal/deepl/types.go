package deepl

import "fmt"

// TranslateRequest is the payload for POST /v2/translate.
type TranslateRequest struct {
	Text       []string `json:"text"`
	TargetLang string   `json:"target_lang"`
	SourceLang string   `json:"source_lang,omitempty"`
}

// Translation is a single translated text with the language the
// provider detected on the source side.
type Translation struct {
	Text                   string `json:"text"`
	DetectedSourceLanguage string `json:"detected_source_language"`
}

type translationsResponse struct {
	Translations []Translation `json:"translations"`
}

// Usage is the account consumption reported by GET /v2/usage.
type Usage struct {
	CharacterCount int64 `json:"character_count"`
	CharacterLimit int64 `json:"character_limit"`
}

type apiErrorBody struct {
	Message string `json:"message"`
}

// APIError is a non-2xx response from the DeepL API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("deepl: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("deepl: request failed with status %d", e.StatusCode)
}

// IsAuth reports whether the error means the API key was rejected.
func (e *APIError) IsAuth() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsQuota reports whether the error means the character quota is
// exhausted. DeepL uses 456 for this.
func (e *APIError) IsQuota() bool {
	return e.StatusCode == 456
}
