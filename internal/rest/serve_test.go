package rest

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ironsheep/despeckle-mcp/internal/cleaning"
	"github.com/ironsheep/despeckle-mcp/internal/imaging"
	"github.com/ironsheep/despeckle-mcp/internal/server"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	tb := server.NewToolbox(imaging.NewImageCacheWithBudget(1<<20), cleaning.DefaultConfig())
	return Router(tb)
}

// createSpeckledImage writes a 12x12 white page with a 4x4 black block and
// two isolated black dots.
func createSpeckledImage(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 12, 12))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for y := 4; y < 8; y++ {
		for x := 4; x < 8; x++ {
			img.SetGray(x, y, color.Gray{})
		}
	}
	img.SetGray(1, 1, color.Gray{})
	img.SetGray(10, 10, color.Gray{})

	path := filepath.Join(t.TempDir(), "speckled.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func doRequest(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPing(t *testing.T) {
	w := doRequest(t, newTestRouter(), http.MethodGet, "/api/v1/ping", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["message"] != "pong" {
		t.Errorf("message: got %q, want pong", body["message"])
	}
}

func TestEndpoints_OK(t *testing.T) {
	r := newTestRouter()
	path := createSpeckledImage(t)

	tests := []struct {
		endpoint string
		body     map[string]interface{}
		key      string
	}{
		{"/api/v1/load", map[string]interface{}{"path": path}, "width"},
		{"/api/v1/despeckle", map[string]interface{}{"path": path, "passes": 2}, "image"},
		{"/api/v1/clean", map[string]interface{}{"path": path}, "variants"},
		{"/api/v1/smooth", map[string]interface{}{"path": path, "format": "webp"}, "image_base64"},
		{"/api/v1/smooth", map[string]interface{}{"path": path, "sharpen": true}, "image_base64"},
		{"/api/v1/despeckle", map[string]interface{}{"path": path, "sharpen": true}, "sharpened"},
		{"/api/v1/diff", map[string]interface{}{"path": path, "variant": "component_only"}, "report"},
		{"/api/v1/noise", map[string]interface{}{"path": path, "density": 0.2, "seed": 3}, "image_base64"},
		{"/api/v1/unload", map[string]interface{}{"path": path}, "evicted"},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, tt.endpoint, tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200 (%s)", w.Code, w.Body.String())
			}
			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if _, ok := body[tt.key]; !ok {
				t.Errorf("response missing %q: %v", tt.key, body)
			}
		})
	}
}

func TestDiff_Report(t *testing.T) {
	r := newTestRouter()
	path := createSpeckledImage(t)

	w := doRequest(t, r, http.MethodPost, "/api/v1/diff", map[string]interface{}{
		"path":    path,
		"variant": "component_only",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", w.Code, w.Body.String())
	}

	var res server.NoiseDiffResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if res.Report.ChangedPixels != 2 {
		t.Errorf("ChangedPixels: got %d, want 2", res.Report.ChangedPixels)
	}
}

func TestEndpoints_Errors(t *testing.T) {
	r := newTestRouter()
	path := createSpeckledImage(t)

	tests := []struct {
		name     string
		endpoint string
		body     interface{}
		want     int
	}{
		{"malformed body", "/api/v1/clean", `{"path":`, http.StatusBadRequest},
		{"wrong type", "/api/v1/despeckle", `{"path":"x.png","passes":"many"}`, http.StatusBadRequest},
		{"invalid threshold", "/api/v1/despeckle", map[string]interface{}{"path": path, "threshold": -1}, http.StatusBadRequest},
		{"invalid variant", "/api/v1/clean", map[string]interface{}{"path": path, "variant": "opening"}, http.StatusBadRequest},
		{"region outside image", "/api/v1/diff", map[string]interface{}{
			"path":   path,
			"region": map[string]int{"x1": 0, "y1": 0, "x2": 50, "y2": 5},
		}, http.StatusBadRequest},
		{"missing path", "/api/v1/smooth", map[string]interface{}{}, http.StatusBadRequest},
		{"unload without path", "/api/v1/unload", map[string]interface{}{}, http.StatusBadRequest},
		{"missing file", "/api/v1/clean", map[string]interface{}{"path": "/nonexistent/image.png"}, http.StatusUnprocessableEntity},
		{"missing file on load", "/api/v1/load", map[string]interface{}{"path": "/nonexistent/image.png"}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, tt.endpoint, tt.body)
			if w.Code != tt.want {
				t.Fatalf("status: got %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("error message should not be empty")
			}
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	w := doRequest(t, newTestRouter(), http.MethodGet, "/api/v1/nothing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}
