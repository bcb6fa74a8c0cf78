package api

import (
  "encoding/json"
  "net/http"
)

type ResponseHandler struct {
  Writer http.ResponseWriter
}

type ErrorInfo struct {
  Code    int    `json:"code"`
  Message string `json:"message"`
}

func (h *ResponseHandler) Json(data interface{}) {
  h.write(http.StatusOK, map[string]interface{}{
    "success": true,
    "data":    data,
  })
}

func (h *ResponseHandler) Pagenate(data interface{}, total int64, current int, pageSize int) {
  h.write(http.StatusOK, map[string]interface{}{
    "success":   true,
    "data":      data,
    "total":     total,
    "current":   current,
    "page_size": pageSize,
  })
}

func (h *ResponseHandler) Error(status int, code int, message string) {
  h.write(status, map[string]interface{}{
    "success": false,
    "error": &ErrorInfo{
      Code:    code,
      Message: message,
    },
  })
}

func (h *ResponseHandler) write(status int, body interface{}) {
  h.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
  h.Writer.WriteHeader(status)
  json.NewEncoder(h.Writer).Encode(body)
}
