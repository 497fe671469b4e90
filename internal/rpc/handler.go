package rpc

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/YutaGoto/imasparql-mcp-server/internal/engine"
)

const Version = "2.0"

type Request struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method" validate:"required"`
	Params  json.RawMessage `json:"params"`
}

type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (s *Server) handleCall(c echo.Context) error {
	req := new(Request)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil || !engine.Known(req.Method) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unsupported method"})
	}

	result, err := engine.Dispatch(c.Request().Context(), s.engine, req.Method, req.Params)
	if err != nil {
		s.logger.Warn("rpc call failed", "method", req.Method, "error", err)
		return c.JSON(http.StatusInternalServerError, Response{JSONRPC: Version, ID: req.ID, Error: err.Error()})
	}
	return c.JSON(http.StatusOK, Response{JSONRPC: Version, ID: req.ID, Result: result})
}
