// Package middleware 存放 Gin 框架的中间件。
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resource-hub-go/pkg/log"
)

// maxLoggedBody caps how much of a JSON body is kept for the log line.
const maxLoggedBody = 4 << 10

// bodyLogWriter 用于捕获响应体，仅在响应为 JSON 时缓存。
type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write 将响应写入 gin.ResponseWriter，同时把 JSON 响应的前一部分写入内部 buffer。
func (w *bodyLogWriter) Write(b []byte) (int, error) {
	if isJSON(w.Header().Get("Content-Type")) && w.body.Len() < maxLoggedBody {
		room := maxLoggedBody - w.body.Len()
		if len(b) < room {
			room = len(b)
		}
		w.body.Write(b[:room])
	}
	return w.ResponseWriter.Write(b)
}

func isJSON(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "application/json")
}

// RequestLogger 是一个 Gin 中间件，用于记录请求和响应日志。
// Only JSON bodies are logged; multipart uploads and file downloads are never buffered.
// Any "password" field is masked.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 记录请求开始时间
		startTime := time.Now()

		// 读取并重新缓存 JSON 请求体
		var requestBody []byte
		if c.Request.Body != nil && isJSON(c.GetHeader("Content-Type")) {
			requestBody, _ = io.ReadAll(io.LimitReader(c.Request.Body, maxLoggedBody+1))
			c.Request.Body = readCloser{io.MultiReader(bytes.NewReader(requestBody), c.Request.Body), c.Request.Body}
		}

		// 使用自定义的 ResponseWriter 捕获响应
		blw := &bodyLogWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		// 处理请求
		c.Next()

		fields := []interface{}{
			"statusCode", c.Writer.Status(),
			"latency", time.Since(startTime).String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"requestId", c.GetString(RequestIDKey),
		}
		if len(requestBody) > 0 {
			fields = append(fields, "requestBody", maskPassword(requestBody))
		}
		if blw.body.Len() > 0 {
			fields = append(fields, "responseBody", blw.body.String())
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}
		log.Infow("HTTP Request Log", fields...)
	}
}

// readCloser 让替换后的请求体依旧关闭原始 Body。
type readCloser struct {
	io.Reader
	io.Closer
}

// maskPassword hides the password field of a JSON object. Bodies that are not a
// complete JSON object are logged as truncated.
func maskPassword(body []byte) string {
	if len(body) > maxLoggedBody {
		return "[truncated]"
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err != nil {
		return "[unparseable]"
	}
	if _, ok := obj["password"]; ok {
		obj["password"] = "***"
	}
	masked, err := json.Marshal(obj)
	if err != nil {
		return "[unparseable]"
	}
	return string(masked)
}
