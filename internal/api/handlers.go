package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/jpmutschler/CalypsoPy2-sub001/internal/command"
	"github.com/jpmutschler/CalypsoPy2-sub001/internal/engine"
	"github.com/jpmutschler/CalypsoPy2-sub001/internal/models"
	"github.com/jpmutschler/CalypsoPy2-sub001/internal/parser"
	"github.com/jpmutschler/CalypsoPy2-sub001/internal/profile"
)

// Handler handles API requests.
type Handler struct {
	engine   *engine.Engine
	profiles *profile.Manager
	version  string
}

// NewHandler creates a new API handler.
func NewHandler(eng *engine.Engine, profiles *profile.Manager, version string) *Handler {
	return &Handler{
		engine:   eng,
		profiles: profiles,
		version:  version,
	}
}

// HandleHealth returns server health status.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"version":  h.version,
		"profile":  h.profiles.Active().Name,
		"inFlight": h.engine.InFlight(),
	})
}

// dispatchRequest selects exactly one command form. A raw command wins
// when set; otherwise one of the structured builders is used.
type dispatchRequest struct {
	Command string `json:"command,omitempty"`
	Context string `json:"context,omitempty"`

	Clock *struct {
		Location string `json:"location"`
		Enable   bool   `json:"enable"`
	} `json:"clock,omitempty"`
	Ssc *struct {
		Mode string `json:"mode"`
	} `json:"ssc,omitempty"`
	Flit *struct {
		Group  int  `json:"group"`
		Enable bool `json:"enable"`
	} `json:"flit,omitempty"`
	Read *struct {
		Address string `json:"address"`
	} `json:"read,omitempty"`
	Write *struct {
		Address string `json:"address"`
		Value   string `json:"value"`
	} `json:"write,omitempty"`
	Dump *struct {
		Address string `json:"address"`
		Count   uint32 `json:"count"`
	} `json:"dump,omitempty"`
	PortDump *struct {
		Port int `json:"port"`
	} `json:"portDump,omitempty"`
	PortStatus *struct {
		Port int `json:"port"`
	} `json:"portStatus,omitempty"`
}

// HandleDispatchCommand builds the wire command and sends it down the
// channel. The reply is interpreted asynchronously; callers watch the
// snapshot or the websocket for the outcome.
func (h *Handler) HandleDispatchCommand(c echo.Context) error {
	var req dispatchRequest
	if err := c.Bind(&req); err != nil {
		return RespondWithError(c, NewBadRequestError("invalid JSON body", err))
	}

	cmd, err := h.buildCommand(&req)
	if err != nil {
		return RespondWithError(c, NewBadRequestError("cannot build command", err))
	}

	rec, err := h.engine.Dispatch(c.Request().Context(), cmd, req.Context)
	if err != nil {
		return RespondWithError(c, NewBadGatewayError("command channel send failed", err))
	}

	return c.JSON(http.StatusAccepted, rec)
}

func (h *Handler) buildCommand(req *dispatchRequest) (string, error) {
	if req.Command != "" {
		return req.Command, nil
	}

	prof := h.profiles.Active()
	switch {
	case req.Clock != nil:
		return command.Clock(models.ClockLocation(strings.ToLower(req.Clock.Location)), req.Clock.Enable)
	case req.Ssc != nil:
		return command.Ssc(models.SscMode(strings.ToLower(req.Ssc.Mode)))
	case req.Flit != nil:
		return command.FlitMode(prof, req.Flit.Group, req.Flit.Enable)
	case req.Read != nil:
		addr, err := parseHexField("address", req.Read.Address)
		if err != nil {
			return "", err
		}
		return command.Read(addr), nil
	case req.Write != nil:
		addr, err := parseHexField("address", req.Write.Address)
		if err != nil {
			return "", err
		}
		val, err := parseHexField("value", req.Write.Value)
		if err != nil {
			return "", err
		}
		return command.Write(addr, val), nil
	case req.Dump != nil:
		addr, err := parseHexField("address", req.Dump.Address)
		if err != nil {
			return "", err
		}
		count := req.Dump.Count
		if count == 0 {
			count = 16
		}
		return command.Dump(addr, count), nil
	case req.PortDump != nil:
		return command.PortDump(prof, req.PortDump.Port)
	case req.PortStatus != nil:
		return command.PortStatusRead(prof, req.PortStatus.Port)
	}
	return "", fmt.Errorf("request selects no command")
}

// HandleGetState returns the canonical state snapshot.
func (h *Handler) HandleGetState(c echo.Context) error {
	return c.JSON(http.StatusOK, h.engine.Snapshot())
}

// HandleGetHistory returns the bounded event history.
func (h *Handler) HandleGetHistory(c echo.Context) error {
	entries := h.engine.History()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   len(entries),
	})
}

// HandleExportHistoryMsgpack returns the history as a msgpack blob for
// external export tooling.
func (h *Handler) HandleExportHistoryMsgpack(c echo.Context) error {
	data, err := msgpack.Marshal(map[string]interface{}{
		"entries":    h.engine.History(),
		"console":    h.engine.Console(),
		"snapshot":   h.engine.Snapshot(),
		"exportedAt": time.Now().UnixMilli(),
	})
	if err != nil {
		return RespondWithError(c, NewInternalError("failed to encode msgpack", err))
	}

	return c.Blob(http.StatusOK, "application/msgpack", data)
}

// renderedValue carries one register word in every presentation the
// console renders.
type renderedValue struct {
	Address string `json:"address"`
	Value   string `json:"value"`
	Binary  string `json:"binary"`
	Decimal string `json:"decimal"`
}

func renderValue(rv models.RegisterValue) renderedValue {
	return renderedValue{
		Address: parser.FormatHex32(rv.Address),
		Value:   parser.FormatHex32(rv.Value),
		Binary:  parser.FormatBinary32(rv.Value),
		Decimal: parser.FormatDecimal32(rv.Value),
	}
}

// HandleGetRegisters returns the most recent register result with
// rendered hex/binary/decimal presentations, plus the port each dump
// row belongs to when the address maps back to one.
func (h *Handler) HandleGetRegisters(c echo.Context) error {
	snap := h.engine.Snapshot()
	if snap.LastRegister == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"result": nil})
	}

	prof := h.profiles.Active()
	out := map[string]interface{}{"kind": snap.LastRegister.Kind}

	if rv := snap.LastRegister.Read; rv != nil {
		out["value"] = renderValue(*rv)
		if port, ok := prof.PortForAddress(rv.Address); ok {
			out["port"] = port
		}
	}

	if rows := snap.LastRegister.Dump; rows != nil {
		rendered := make([]map[string]interface{}, 0, len(rows))
		for _, row := range rows {
			words := make([]renderedValue, 0, len(row.Words))
			for _, w := range row.Words {
				words = append(words, renderValue(w))
			}
			r := map[string]interface{}{
				"base":  parser.FormatHex32(row.Base),
				"words": words,
			}
			if port, ok := prof.PortForAddress(row.Base); ok {
				r["port"] = port
			}
			rendered = append(rendered, r)
		}
		out["rows"] = rendered
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"result": out})
}

// HandleGetRegisterHistory returns the register console history.
func (h *Handler) HandleGetRegisterHistory(c echo.Context) error {
	entries := h.engine.Console()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   len(entries),
	})
}

// HandleGetProfiles lists the loaded device-family profiles.
func (h *Handler) HandleGetProfiles(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"profiles": h.profiles.Names(),
		"active":   h.profiles.Active().Name,
	})
}

// HandleSetProfile selects the active device-family profile.
func (h *Handler) HandleSetProfile(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return RespondWithError(c, NewBadRequestError("invalid JSON body", err))
	}
	if err := h.profiles.SetActive(req.Name); err != nil {
		return RespondWithError(c, NewNotFoundError("profile", req.Name))
	}
	return c.JSON(http.StatusOK, map[string]string{"active": req.Name})
}

func parseHexField(name, s string) (uint32, error) {
	t := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if t == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: %w", name, s, err)
	}
	return uint32(v), nil
}
