package response

import "github.com/gin-gonic/gin"

// RespondJSON writes the standard envelope. Every handler in the API, from
// catalog reads to lock errors, goes through here so clients see one shape.
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}
