package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const msgBadBody = "Corpo da requisição inválido"

// bindBody decodes the JSON body into dst. A missing, empty or syntactically
// broken body is treated as an empty object, so the field rules decide what
// happens next. Any other decode failure (a body that isn't an object, or a
// field of the wrong type) is answered with 400 and bindBody returns false.
func bindBody[T any](c *gin.Context, logger *slog.Logger, dst *T) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var syntaxErr *json.SyntaxError
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.As(err, &syntaxErr) {
		logger.Debug("treating unreadable request body as empty",
			"path", c.FullPath(),
			"error", err,
		)
		var zero T
		*dst = zero
		return true
	}
	writeMessage(c, http.StatusBadRequest, msgBadBody)
	return false
}

func writeMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

func writeInternal(c *gin.Context, logger *slog.Logger, op string, err error) {
	logger.Error("request failed",
		"op", op,
		"path", c.Request.URL.Path,
		"error", err,
	)
	writeMessage(c, http.StatusInternalServerError, "Erro interno do servidor")
}
