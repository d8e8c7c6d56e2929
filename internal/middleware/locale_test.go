package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetectLocale(t *testing.T) {
	tests := []struct {
		name           string
		xLocale        string
		acceptLanguage string
		fallback       string
		want           string
	}{
		{name: "x-locale wins", xLocale: "zh-CN", acceptLanguage: "en-US", fallback: "en", want: "zh"},
		{name: "accept language chinese", acceptLanguage: "zh-TW,zh;q=0.9,en;q=0.5", fallback: "en", want: "zh"},
		{name: "accept language english", acceptLanguage: "en-GB,en;q=0.9", fallback: "zh", want: "en"},
		{name: "unsupported language falls back to english", acceptLanguage: "fr-FR", fallback: "en", want: "en"},
		{name: "no headers use fallback", fallback: "zh", want: "zh"},
		{name: "nothing at all", want: "en"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.xLocale != "" {
				req.Header.Set("X-Locale", tc.xLocale)
			}
			if tc.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tc.acceptLanguage)
			}
			if got := detectLocale(req, tc.fallback); got != tc.want {
				t.Fatalf("detectLocale() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLocaleMiddlewareSetsContext(t *testing.T) {
	var gotLocale, gotCountry string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocale = LocaleFromContext(r.Context())
		gotCountry = CountryFromContext(r.Context())
	})

	lookup := func(ip string) (string, error) { return "cn", nil }
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "zh")
	Locale("en", lookup)(next).ServeHTTP(httptest.NewRecorder(), req)

	if gotLocale != "zh" {
		t.Fatalf("locale = %q, want %q", gotLocale, "zh")
	}
	if gotCountry != "CN" {
		t.Fatalf("country = %q, want %q", gotCountry, "CN")
	}
}
