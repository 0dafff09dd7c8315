package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmshttp "github.com/craftbase-io/cms-client/internal/http"
	"github.com/craftbase-io/cms-client/pkg/cms"
)

// MockTokenProvider for testing.
type MockTokenProvider struct {
	token string
	err   error
}

func (m *MockTokenProvider) GetToken(ctx context.Context) (string, error) {
	return m.token, m.err
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) log(level, msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.log("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.log("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.log("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.log("error", msg, fields) }

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/experimental/content/item-1", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			writer.Header().Set("ETag", `"v1"`)
			_ = json.NewEncoder(writer).Encode(map[string]string{"id": "item-1", "name": "Test"})
		}))
		defer server.Close()

		client := cmshttp.NewClient(server.URL, &MockTokenProvider{token: "test-token"})

		resp, err := client.Do(context.Background(), &cmshttp.Request{
			Method: "GET",
			Path:   "/experimental/content/item-1",
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, `"v1"`, resp.ETag)

		var result map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "item-1", result["id"])
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "pageIndex=1&pageSize=50", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := cmshttp.NewClient(server.URL, nil)

		query := url.Values{}
		query.Set("pageIndex", "1")
		query.Set("pageSize", "50")

		resp, err := client.Do(context.Background(), &cmshttp.Request{
			Method: "GET",
			Path:   "/items",
			Query:  query,
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "Test", body["name"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := cmshttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &cmshttp.Request{
			Method: "POST",
			Path:   "/content",
			Body:   map[string]string{"name": "Test"},
		})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("header precedence", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			// PATCH forces merge-patch over the caller-supplied content type.
			assert.Equal(t, "application/merge-patch+json", request.Header.Get("Content-Type"))
			assert.Equal(t, `"v7"`, request.Header.Get("If-Match"))
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := cmshttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &cmshttp.Request{
			Method: "PATCH",
			Path:   "/content/item-1",
			Body:   map[string]string{"name": "Renamed"},
			Headers: map[string]string{
				"Content-Type":    "text/plain",
				"X-Custom-Header": "custom-value",
			},
			ETag: `"v7"`,
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("per-request headers override defaults", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "application/xml", request.Header.Get("Content-Type"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := cmshttp.NewClient(server.URL, nil)

		_, err := client.Do(context.Background(), &cmshttp.Request{
			Method:  "GET",
			Path:    "/content",
			Headers: map[string]string{"Content-Type": "application/xml"},
		})
		require.NoError(t, err)
	})

	t.Run("structured error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(writer).Encode(cms.APIError{
				Type:   "https://errors.example.com/not-found",
				Title:  "Not Found",
				Status: 404,
				Errors: []cms.FieldError{{Field: "id", Message: "unknown item"}},
			})
		}))
		defer server.Close()

		client := cmshttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &cmshttp.Request{
			Method: "GET",
			Path:   "/experimental/content/missing",
		})
		require.Error(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		apiErr := &cms.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.Status)
		assert.Equal(t, "Not Found", apiErr.Title)
		require.Len(t, apiErr.Errors, 1)
		assert.Equal(t, "unknown item", apiErr.Errors[0].Message)
	})

	t.Run("unparseable error body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte("gateway said no"))
		}))
		defer server.Close()

		client := cmshttp.NewClient(server.URL, nil)

		_, err := client.Do(context.Background(), &cmshttp.Request{
			Method: "GET",
			Path:   "/experimental/content/missing",
		})
		require.Error(t, err)

		apiErr := &cms.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.Status)
		assert.Equal(t, "Not Found", apiErr.Title)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			time.Sleep(300 * time.Millisecond)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := cmshttp.NewClient(server.URL, nil, cmshttp.WithTimeout(50*time.Millisecond))

		resp, err := client.Do(context.Background(), &cmshttp.Request{
			Method: "GET",
			Path:   "/slow",
		})
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.True(t, cms.IsTimeout(err))

		apiErr := &cms.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 408, apiErr.Status)
		assert.Equal(t, "TIMEOUT", apiErr.Code)
	})

	t.Run("token provider failure propagates unchanged", func(t *testing.T) {
		t.Parallel()

		client := cmshttp.NewClient("http://localhost:0", &MockTokenProvider{err: cms.ErrMissingCredentials})

		_, err := client.Do(context.Background(), &cmshttp.Request{
			Method: "GET",
			Path:   "/content",
		})
		require.ErrorIs(t, err, cms.ErrMissingCredentials)
		assert.True(t, cms.IsConfigurationError(err))
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := cmshttp.NewClient(server.URL, nil, cmshttp.WithLogger(logger), cmshttp.WithDebug(true))

		_, err := client.Do(context.Background(), &cmshttp.Request{
			Method: "GET",
			Path:   "/content",
		})
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*cmshttp.Client, context.Context) (*cmshttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *cmshttp.Client, ctx context.Context) (*cmshttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *cmshttp.Client, ctx context.Context) (*cmshttp.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PATCH",
			method: "PATCH",
			fn: func(c *cmshttp.Client, ctx context.Context) (*cmshttp.Response, error) {
				return c.Patch(ctx, "/test", map[string]string{"key": "value"}, "")
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *cmshttp.Client, ctx context.Context) (*cmshttp.Response, error) {
				return c.Delete(ctx, "/test")
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := cmshttp.NewClient(server.URL, nil)
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}
