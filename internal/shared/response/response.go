package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the wire shape of every API response, success or error.
type Envelope struct {
	Result     interface{} `json:"result"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

func send(c *gin.Context, statusCode int, result interface{}, message string, success bool) {
	c.JSON(statusCode, Envelope{
		Result:     result,
		StatusCode: statusCode,
		Message:    message,
		Success:    success,
	})
}

// Success responses

func Success(c *gin.Context, result interface{}, message string) {
	send(c, 200, result, message, true)
}

func Created(c *gin.Context, result interface{}, message string) {
	send(c, 201, result, message, true)
}

// Error responses

func BadRequest(c *gin.Context, message string) {
	send(c, 400, nil, message, false)
}

// BadRequestWithDetails carries field-level validation detail in result.
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	send(c, 400, details, message, false)
}

func Unauthorized(c *gin.Context, message string) {
	send(c, 401, nil, message, false)
}

func Forbidden(c *gin.Context, message string) {
	send(c, 403, nil, message, false)
}

func NotFound(c *gin.Context, message string) {
	send(c, 404, nil, message, false)
}

func Conflict(c *gin.Context, message string) {
	send(c, 409, nil, message, false)
}

func InternalServerError(c *gin.Context, message string) {
	send(c, 500, nil, message, false)
}
