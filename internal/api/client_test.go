package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type fakeTokens struct {
	token string
	err   error
}

func (f fakeTokens) Token() (string, error) {
	return f.token, f.err
}

func newTestClient(t *testing.T, handler http.Handler, tokens TokenProvider) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(&ClientConfig{Server: "test", BaseURL: srv.URL}, tokens)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, srv
}

func TestListAttachesBearerAndDecodes(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/api/v1/children" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":[{"id":"c1","full_name":"Ani"},{"id":"c2","full_name":"Budi"}]}`))
	})

	c, _ := newTestClient(t, handler, fakeTokens{token: "tok-123"})

	docs, err := c.List(context.Background(), "children")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("authorization header = %q", gotAuth)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	if docs[0]["fullName"] != "Ani" {
		t.Errorf("wire keys not decoded: %#v", docs[0])
	}
}

func TestMissingSessionFailsBeforeNetwork(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	c, _ := newTestClient(t, handler, fakeTokens{err: ErrNoSession})

	if _, err := c.List(context.Background(), "families"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if called {
		t.Error("request reached the server without a session")
	}
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"nama wajib diisi"}`))
	})

	c, _ := newTestClient(t, handler, fakeTokens{token: "t"})

	_, err := c.Create(context.Background(), "children", map[string]any{"fullName": ""}, nil)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != 422 || se.Message != "nama wajib diisi" {
		t.Errorf("got status=%d message=%q", se.StatusCode, se.Message)
	}
}

func TestUnauthorizedYieldsSessionExpired(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token tidak valid"}`))
	})

	c, _ := newTestClient(t, handler, fakeTokens{token: "stale"})

	_, err := c.List(context.Background(), "families")
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if !IsAuthError(err) {
		t.Error("expired session should read as an auth error")
	}
}

func TestCreateEncodesWireKeys(t *testing.T) {
	var body string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := make([]byte, r.ContentLength)
		r.Body.Read(b)
		body = string(b)
		w.Write([]byte(`{"data":{"id":"f1","family_name":"Santoso"}}`))
	})

	c, _ := newTestClient(t, handler, fakeTokens{token: "t"})

	doc, err := c.Create(context.Background(), "families", map[string]any{"familyName": "Santoso"}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.Contains(body, `"family_name"`) {
		t.Errorf("request body not snake_cased: %s", body)
	}
	if doc["familyName"] != "Santoso" {
		t.Errorf("response not decoded: %#v", doc)
	}
}

func TestCreateWithFilesIsMultipart(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("not multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if got := r.FormValue("title"); got != "KTP" {
			t.Errorf("form field title = %q", got)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
		} else {
			f.Close()
			if hdr.Filename != "ktp.pdf" {
				t.Errorf("filename = %q", hdr.Filename)
			}
		}
		w.Write([]byte(`{"data":{"id":"d1"}}`))
	})

	c, _ := newTestClient(t, handler, fakeTokens{token: "t"})

	files := []FilePart{{Field: "file", Filename: "ktp.pdf", Content: []byte("%PDF-")}}
	if _, err := c.Create(context.Background(), "documents", map[string]any{"title": "KTP"}, files); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestPatchReEncodesOpPaths(t *testing.T) {
	var body string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json-patch+json" {
			t.Errorf("content type = %q", ct)
		}
		b := make([]byte, r.ContentLength)
		r.Body.Read(b)
		body = string(b)
		w.Write([]byte(`{"data":null}`))
	})

	c, _ := newTestClient(t, handler, fakeTokens{token: "t"})

	ops := []byte(`[{"op":"replace","path":"/fullName","value":"Citra"}]`)
	if err := c.Patch(context.Background(), "children", "c1", ops); err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if !strings.Contains(body, `"/full_name"`) {
		t.Errorf("patch path not re-encoded: %s", body)
	}
}

func TestDeleteTargetsRecordURL(t *testing.T) {
	var gotMethod, gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"data":null,"message":"Data berhasil dihapus"}`))
	})

	c, _ := newTestClient(t, handler, fakeTokens{token: "t"})

	if err := c.Delete(context.Background(), "visits", "v9"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/v1/visits/v9" {
		t.Errorf("got %s %s", gotMethod, gotPath)
	}
}

func TestIsAuthError(t *testing.T) {
	if !IsAuthError(ErrNoSession) {
		t.Error("ErrNoSession should be an auth error")
	}
	if !IsAuthError(&StatusError{StatusCode: 401}) {
		t.Error("401 should be an auth error")
	}
	if IsAuthError(&StatusError{StatusCode: 500}) {
		t.Error("500 is not an auth error")
	}
}
