package server

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/lqip"
)

// createTestImageFile creates a test PNG file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "handler-test.png")
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

// callTool sends a tools/call request for name with the given arguments.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()
	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeToolText unmarshals the text content of a successful tool response.
func decodeToolText(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("unexpected content: %v", content)
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
		t.Fatalf("tool text is not JSON: %v", err)
	}
}

func TestHandleToolsCall_Base64(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})

	var result Base64Result
	decodeToolText(t, callTool(t, s, "lqip_base64", map[string]interface{}{"path": imgPath}), &result)

	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	if !strings.HasPrefix(result.DataURI, "data:image/png;base64,") {
		t.Errorf("DataURI prefix: got %.40s", result.DataURI)
	}
}

func TestHandleToolsCall_Base64_Unsupported(t *testing.T) {
	s := New()
	resp := callTool(t, s, "lqip_base64", map[string]interface{}{"path": "/tmp/photo.gif"})

	if resp.Error == nil {
		t.Fatal("expected an error for a gif file")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("code: got %d, want -32000", resp.Error.Code)
	}
	want := (&lqip.UnsupportedFormatError{}).Error()
	if resp.Error.Data != want {
		t.Errorf("data: got %v, want %s", resp.Error.Data, want)
	}
}

func TestHandleToolsCall_Palette(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 50, 50, color.RGBA{200, 30, 30, 255})

	var result PaletteResult
	decodeToolText(t, callTool(t, s, "lqip_palette", map[string]interface{}{"path": imgPath}), &result)

	if len(result.Palette) == 0 {
		t.Fatal("palette is empty")
	}
	for _, hex := range result.Palette {
		if len(hex) != 7 || hex[0] != '#' {
			t.Errorf("invalid hex %q", hex)
		}
	}
}

func TestHandleToolsCall_Palette_MissingFile(t *testing.T) {
	s := New()
	resp := callTool(t, s, "lqip_palette", map[string]interface{}{"path": filepath.Join(t.TempDir(), "nope.png")})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("expected tool execution failure, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_MissingPath(t *testing.T) {
	s := New()
	for _, tool := range []string{"lqip_base64", "lqip_palette"} {
		t.Run(tool, func(t *testing.T) {
			resp := callTool(t, s, tool, map[string]interface{}{})
			if resp.Error == nil {
				t.Fatal("expected an error without a path")
			}
			if resp.Error.Data != errPathRequired.Error() {
				t.Errorf("data: got %v, want %s", resp.Error.Data, errPathRequired)
			}
		})
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s := New()
	resp := callTool(t, s, "image_crop", map[string]interface{}{"path": "a.png"})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("expected tool execution failure, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp == nil || resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected invalid params error, got %+v", resp)
	}
}

func TestRun_ConcurrentToolCalls(t *testing.T) {
	imgPath := createTestImageFile(t, 60, 30, color.RGBA{20, 120, 220, 255})

	var lines []string
	for i := 1; i <= 8; i++ {
		tool := "lqip_base64"
		if i%2 == 0 {
			tool = "lqip_palette"
		}
		req := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      i,
			"method":  "tools/call",
			"params": map[string]interface{}{
				"name":      tool,
				"arguments": map[string]interface{}{"path": imgPath},
			},
		}
		b, _ := json.Marshal(req)
		lines = append(lines, string(b))
	}

	var out strings.Builder
	s := New(WithMaxConcurrency(3))
	if err := s.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n")), &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	dec := json.NewDecoder(strings.NewReader(out.String()))
	seen := 0
	for dec.More() {
		var resp MCPResponse
		if err := dec.Decode(&resp); err != nil {
			t.Fatalf("invalid response: %v", err)
		}
		if resp.Error != nil {
			t.Errorf("id %v failed: %+v", resp.ID, resp.Error)
		}
		seen++
	}
	if seen != 8 {
		t.Errorf("responses: got %d, want 8", seen)
	}
}
