package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// AppID records the application identifier under the key "app_id".
func AppID(id string) slog.Attr {
	return slog.String("app_id", id)
}

// PubID records the publisher identifier under the key "pub_id".
func PubID(id string) slog.Attr {
	return slog.String("pub_id", id)
}

// UserID records the user identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// DeviceID records the derived device identifier under the key "device_id".
func DeviceID(id string) slog.Attr {
	return slog.String("device_id", id)
}

// SubmissionID records the submission identifier under the key "submission_id".
func SubmissionID(id string) slog.Attr {
	return slog.String("submission_id", id)
}

// Endpoint records the collection endpoint URL under the key "endpoint".
func Endpoint(url string) slog.Attr {
	return slog.String("endpoint", url)
}

// StatusCode records an HTTP status under the key "status_code".
// Zero means no response was received and yields an empty Attr.
func StatusCode(code int) slog.Attr {
	if code == 0 {
		return slog.Attr{}
	}
	return slog.Int("status_code", code)
}

// Outcome records the outcome kind of a submission under the key "outcome".
func Outcome(kind string) slog.Attr {
	return slog.String("outcome", kind)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// ClientIP records the remote client address under the key "client_ip".
func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}

// RequestID records the request correlation identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}
