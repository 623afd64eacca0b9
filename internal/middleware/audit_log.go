package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/combination-service/internal/domain/model"
)

// AuditLog records an action, such as a denomination update, through sink.
func AuditLog(sink LogSink, c *gin.Context, actionType, message string, fields map[string]interface{}) {
	if isNilSink(sink) {
		return
	}
	sink.Log(auditEntry(c, "info", actionType, message, fields))
}

// AuditLogError records a failed action through sink.
func AuditLogError(sink LogSink, c *gin.Context, actionType, message string, err error, fields map[string]interface{}) {
	if isNilSink(sink) {
		return
	}
	entry := auditEntry(c, "error", actionType, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	sink.Log(entry)
}

func auditEntry(c *gin.Context, level, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	entry := model.NewAuditEntry(GetRequestID(c), actionType, message)
	entry.Level = level
	entry.Method = c.Request.Method
	entry.Path = c.Request.URL.Path
	entry.IP = c.ClientIP()
	entry.UserAgent = c.Request.UserAgent()
	if len(fields) > 0 {
		entry.WithFields(fields)
	}
	return entry
}
