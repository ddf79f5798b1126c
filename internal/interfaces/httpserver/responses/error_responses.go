package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mediagrab-server/internal/domain/download"
)

// ErrorResponse is the uniform failure envelope; Success is always false.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HandleError renders a domain error as the failure envelope. Unclassified
// errors become a 500 with the handler's fallback message so internals never
// leak to clients.
func HandleError(reqCtx *gin.Context, err error, message string) {
	if derr, ok := download.AsError(err); ok {
		errorMessage := derr.Message
		if errorMessage == "" {
			errorMessage = message
		}

		reqCtx.AbortWithStatusJSON(codeToStatus(derr.Code), ErrorResponse{
			Success: false,
			Error:   errorMessage,
		})
		return
	}

	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Error:   message,
	})
}

func codeToStatus(code download.ErrorCode) int {
	switch code {
	case download.CodeInvalidInput, download.CodeUnsupportedPlatform, download.CodeUnsupportedFormat:
		return http.StatusBadRequest
	case download.CodeNotFound:
		return http.StatusNotFound
	case download.CodeNetwork, download.CodeExtraction, download.CodeArtifactMissing:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
