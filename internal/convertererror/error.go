// Package convertererror defines the taxonomy of errors the conversion
// pipeline can raise, grounded on the enum in the original Rust source's
// error.rs but expressed as a Go error type with a Kind tag instead of a
// derive-macro enum.
package convertererror

import "fmt"

// Kind tags a ConvertError with the taxonomy spec.md §7 names.
type Kind string

const (
	KindFetch               Kind = "fetch"
	KindTimeout             Kind = "timeout"
	KindBase64Decode        Kind = "base64_decode"
	KindURLParse            Kind = "url_parse"
	KindTemplateParse       Kind = "template_parse"
	KindYAMLSerialize       Kind = "yaml_serialize"
	KindInvalidNodeFormat   Kind = "invalid_node_format"
	KindInvalidRegex        Kind = "invalid_regex"
	KindUnsupportedProtocol Kind = "unsupported_protocol"
	KindMissingField        Kind = "missing_field"
	KindInternal            Kind = "internal"
)

// ConvertError is the single error type surfaced across every stage of the
// pipeline. Fields beyond Kind/Message are populated only when relevant to
// that Kind, matching the struct-variant fields of the original enum.
type ConvertError struct {
	Kind     Kind
	Message  string
	URL      string
	Protocol string
	Pattern  string
	Field    string
	Context  string
	Wrapped  error
}

func (e *ConvertError) Error() string {
	switch e.Kind {
	case KindFetch:
		return fmt.Sprintf("failed to fetch url: %s - %s", e.URL, e.Message)
	case KindTimeout:
		return fmt.Sprintf("request timeout: %s", e.URL)
	case KindBase64Decode:
		return fmt.Sprintf("failed to decode base64 content: %s", e.Message)
	case KindURLParse:
		return fmt.Sprintf("failed to parse url: %s", e.Message)
	case KindTemplateParse:
		return fmt.Sprintf("failed to parse rule template: %s", e.Message)
	case KindYAMLSerialize:
		return fmt.Sprintf("failed to serialize yaml: %s", e.Message)
	case KindInvalidNodeFormat:
		return fmt.Sprintf("invalid node format: %s - %s", e.Protocol, e.Message)
	case KindInvalidRegex:
		return fmt.Sprintf("invalid regex pattern: %s - %s", e.Pattern, e.Message)
	case KindUnsupportedProtocol:
		return fmt.Sprintf("unsupported protocol: %s", e.Protocol)
	case KindMissingField:
		return fmt.Sprintf("missing required field: %s in %s", e.Field, e.Context)
	default:
		return fmt.Sprintf("internal error: %s", e.Message)
	}
}

func (e *ConvertError) Unwrap() error { return e.Wrapped }

func Fetch(url string, err error) *ConvertError {
	return &ConvertError{Kind: KindFetch, URL: url, Message: err.Error(), Wrapped: err}
}

func Timeout(url string) *ConvertError {
	return &ConvertError{Kind: KindTimeout, URL: url}
}

func Base64Decode(msg string) *ConvertError {
	return &ConvertError{Kind: KindBase64Decode, Message: msg}
}

func URLParse(msg string) *ConvertError {
	return &ConvertError{Kind: KindURLParse, Message: msg}
}

func TemplateParse(msg string) *ConvertError {
	return &ConvertError{Kind: KindTemplateParse, Message: msg}
}

func YAMLSerialize(err error) *ConvertError {
	return &ConvertError{Kind: KindYAMLSerialize, Message: err.Error(), Wrapped: err}
}

func InvalidNodeFormat(protocol, reason string) *ConvertError {
	return &ConvertError{Kind: KindInvalidNodeFormat, Protocol: protocol, Message: reason}
}

func InvalidRegex(pattern string, err error) *ConvertError {
	return &ConvertError{Kind: KindInvalidRegex, Pattern: pattern, Message: err.Error(), Wrapped: err}
}

func UnsupportedProtocol(scheme string) *ConvertError {
	return &ConvertError{Kind: KindUnsupportedProtocol, Protocol: scheme}
}

func MissingField(field, context string) *ConvertError {
	return &ConvertError{Kind: KindMissingField, Field: field, Context: context}
}

func Internal(msg string) *ConvertError {
	return &ConvertError{Kind: KindInternal, Message: msg}
}

func Internalf(format string, args ...any) *ConvertError {
	return &ConvertError{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}
