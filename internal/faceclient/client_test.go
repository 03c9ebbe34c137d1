package faceclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDetect_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detect_faces" {
			t.Errorf("期望路径 /detect_faces，实际=%s", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["image"] != "base64-frame" {
			t.Errorf("期望上送原始图像，实际=%s", body["image"])
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"faces_detected": 2,
			"message":        "2 faces detected",
			"image":          "annotated-frame",
			"students": []map[string]interface{}{
				{"id": 0, "bbox": []float64{1, 2, 3, 4}, "suspicious": false},
				{"id": 1, "bbox": []float64{5, 6, 7, 8}, "suspicious": false},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	result, err := c.Detect(context.Background(), "base64-frame")
	if err != nil {
		t.Fatalf("Detect 应成功: %v", err)
	}
	if result.FacesDetected != 2 {
		t.Errorf("期望 faces_detected=2，实际=%d", result.FacesDetected)
	}
	if len(result.Students) != 2 {
		t.Errorf("期望 2 条逐人状态，实际=%d", len(result.Students))
	}
	if result.Suspicious {
		t.Error("无可疑标记时 suspicious 应为 false")
	}
}

func TestDetect_DerivesSuspiciousFromStudents(t *testing.T) {
	// 服务端未汇总 suspicious 字段时由逐人状态推导
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"faces_detected": 1,
			"students": []map[string]interface{}{
				{"id": 0, "bbox": []float64{1, 2, 3, 4}, "suspicious": true, "flags": []string{"phone"}},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	result, err := c.Detect(context.Background(), "base64-frame")
	if err != nil {
		t.Fatalf("Detect 应成功: %v", err)
	}
	if !result.Suspicious {
		t.Error("存在可疑学生时应推导 suspicious=true")
	}
}

func TestDetect_EmptyImage(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second)
	if _, err := c.Detect(context.Background(), ""); err == nil {
		t.Error("空图像应返回错误")
	}
}

func TestDetect_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	if _, err := c.Detect(context.Background(), "base64-frame"); err == nil {
		t.Error("上游 5xx 应返回错误")
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	if err := c.Health(context.Background()); err != nil {
		t.Errorf("Health 应成功: %v", err)
	}

	down := New("http://127.0.0.1:1", 200*time.Millisecond)
	if err := down.Health(context.Background()); err == nil {
		t.Error("服务不可达时 Health 应返回错误")
	}
}
