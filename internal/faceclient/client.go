package faceclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
)

// Client 人脸检测微服务（Flask）的 HTTP 客户端
type Client struct {
	baseURL string
	http    *http.Client
}

// DetectResult 一帧图像的检测结果
type DetectResult struct {
	FacesDetected int                     `json:"faces_detected"`
	Message       string                  `json:"message"`
	Image         string                  `json:"image"` // 带标注框的 base64 快照
	Students      model.StudentStatusList `json:"students"`
	Suspicious    bool                    `json:"suspicious"`
}

// New 创建人脸服务客户端
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Detect 上送一帧 base64 图像，返回检测到的人脸与逐人状态
func (c *Client) Detect(ctx context.Context, imageBase64 string) (*DetectResult, error) {
	if imageBase64 == "" {
		return nil, fmt.Errorf("图像数据为空")
	}

	body, _ := json.Marshal(map[string]string{"image": imageBase64})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect_faces", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("人脸服务请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("人脸服务返回 %s: %s", resp.Status, string(raw))
	}

	var out DetectResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("解析人脸服务响应失败: %w", err)
	}

	// 服务端未汇总可疑标记时，由逐人状态推导
	if !out.Suspicious {
		for _, s := range out.Students {
			if s.Suspicious {
				out.Suspicious = true
				break
			}
		}
	}

	return &out, nil
}

// Health 探测人脸服务可用性
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("人脸服务不可达: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("人脸服务状态异常: %s", resp.Status)
	}
	return nil
}
