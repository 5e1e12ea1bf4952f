package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageReply(data, mimeType string) string {
	reply := generateContentResponse{
		Candidates: []candidate{{Content: content{Parts: []part{
			{InlineData: &blob{Data: data, MimeType: mimeType}},
		}}}},
	}
	raw, _ := json.Marshal(reply)
	return string(raw)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Options{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
}

func TestGenerateSendsPromptAndAspectRatio(t *testing.T) {
	var got generateContentRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash-image:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		io.WriteString(w, imageReply("AAAA", "image/png"))
	})

	img, err := client.Generate(context.Background(), "a logo", GenerateOptions{AspectRatio: "16:9"})
	require.NoError(t, err)
	assert.Equal(t, "AAAA", img.Data)

	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 1)
	assert.Equal(t, "a logo", got.Contents[0].Parts[0].Text)
	assert.Equal(t, []string{"IMAGE"}, got.GenerationConfig.ResponseModalities)
	require.NotNil(t, got.GenerationConfig.ImageConfig)
	assert.Equal(t, "16:9", got.GenerationConfig.ImageConfig.AspectRatio)
}

func TestGenerateRetriesWithoutImageConfig(t *testing.T) {
	var requests []generateContentRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req generateContentRequest
		require.NoError(t, json.Unmarshal(body, &req))
		requests = append(requests, req)

		if req.GenerationConfig.ImageConfig != nil {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":{"message":"Unknown name \"imageConfig\""}}`)
			return
		}
		io.WriteString(w, imageReply("AAAA", "image/png"))
	})

	img, err := client.Generate(context.Background(), "a logo", GenerateOptions{AspectRatio: "1:1"})
	require.NoError(t, err)
	assert.Equal(t, "AAAA", img.Data)

	require.Len(t, requests, 2)
	assert.NotNil(t, requests[0].GenerationConfig.ImageConfig)
	assert.Nil(t, requests[1].GenerationConfig.ImageConfig)
}

func TestGenerateWrapsTransportFailures(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"message":"quota exceeded"}}`)
	})

	_, err := client.Generate(context.Background(), "a logo", GenerateOptions{})

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, "image service request failed", err.Error())
	assert.Contains(t, transport.Err.Error(), "quota exceeded")
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	client := New(Options{APIKey: "k", HTTPClient: http.DefaultClient})

	_, err := client.Generate(context.Background(), "   ", GenerateOptions{})
	assert.EqualError(t, err, "prompt is empty")
}

func TestRefineAttachesPriorImage(t *testing.T) {
	var got generateContentRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		io.WriteString(w, imageReply("TkVX", "image/png"))
	})

	prior := GeneratedImage{
		DataURL:  "data:image/png;base64,T0xE",
		Data:     "T0xE",
		MimeType: "image/png",
	}

	img, err := client.Refine(context.Background(), "make it bigger", prior, GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "TkVX", img.Data)

	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 2)
	assert.Equal(t, "make it bigger", got.Contents[0].Parts[0].Text)
	require.NotNil(t, got.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "T0xE", got.Contents[0].Parts[1].InlineData.Data)
	assert.Equal(t, "image/png", got.Contents[0].Parts[1].InlineData.MimeType)
}

func TestRefineStripsDataURLPrefix(t *testing.T) {
	var got generateContentRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		io.WriteString(w, imageReply("TkVX", "image/png"))
	})

	prior := GeneratedImage{Data: "data:image/png;base64,T0xE", MimeType: "image/png"}

	_, err := client.Refine(context.Background(), "tweak", prior, GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "T0xE", got.Contents[0].Parts[1].InlineData.Data)
}

func TestRefineRequiresAnImage(t *testing.T) {
	client := New(Options{APIKey: "k", HTTPClient: http.DefaultClient})

	_, err := client.Refine(context.Background(), "tweak", GeneratedImage{}, GenerateOptions{})
	assert.EqualError(t, err, "no image to refine")
}
