package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jpmutschler/CalypsoPy2-sub001/internal/api"
	"github.com/jpmutschler/CalypsoPy2-sub001/internal/config"
	"github.com/jpmutschler/CalypsoPy2-sub001/internal/engine"
	"github.com/jpmutschler/CalypsoPy2-sub001/internal/profile"
	"github.com/jpmutschler/CalypsoPy2-sub001/internal/transport"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	exeDir := filepath.Dir(exePath)

	// Load XML configuration
	configPath := filepath.Join(exeDir, "switchctl.config.xml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	// Load device-family profiles
	profiles, err := profile.NewManager(cfg.Device.ProfilesDirectory)
	if err != nil {
		fmt.Printf("Failed to load device profiles: %v\n", err)
		os.Exit(1)
	}
	if cfg.Device.ActiveProfile != "" {
		if err := profiles.SetActive(cfg.Device.ActiveProfile); err != nil {
			fmt.Printf("Warning: %v, keeping %s\n", err, profiles.Active().Name)
		}
	}

	// Command channel: demo mode answers from the in-process simulator.
	// A serial carrier plugs in behind the same transport.Channel seam.
	var channel transport.Channel
	if cfg.Device.DemoMode {
		channel = transport.NewSimDevice(profiles.Active())
	} else {
		fmt.Printf("Serial transport (%s @ %d) requires an external channel bridge; "+
			"enable DemoMode or attach a bridge\n", cfg.Device.SerialPort, cfg.Device.BaudRate)
		os.Exit(1)
	}

	eng := engine.NewWithCapacities(channel, cfg.History.EventCapacity, cfg.History.ConsoleCapacity)

	// Single consumer: responses are applied strictly in arrival order
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go eng.Run(ctx)

	h := api.NewHandler(eng, profiles, Version)
	wsHandler := api.NewWebSocketHandler(eng)

	e := echo.New()
	e.HTTPErrorHandler = api.ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !cfg.Advanced.EnableRequestLogging {
				return true
			}
			path := c.Request().URL.Path
			return path == "/api/health" || strings.HasSuffix(path, "/state")
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize:         1024 * 4,
		DisablePrintStack: false,
		LogLevel:          0,
	}))

	if cfg.Server.EnableCompression {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Level: cfg.Server.CompressionLevel,
			Skipper: func(c echo.Context) bool {
				return strings.Contains(c.Request().URL.Path, "/ws/")
			},
		}))
	}

	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	// API Routes
	apiGroup := e.Group("/api")

	apiGroup.GET("/health", h.HandleHealth)
	apiGroup.GET("/ws/events", wsHandler.HandleEvents)

	// Command dispatch and state
	apiGroup.POST("/commands", h.HandleDispatchCommand)
	apiGroup.GET("/state", h.HandleGetState)

	// History / export
	apiGroup.GET("/history", h.HandleGetHistory)
	apiGroup.GET("/history/export/msgpack", h.HandleExportHistoryMsgpack)

	// Register console
	apiGroup.GET("/registers", h.HandleGetRegisters)
	apiGroup.GET("/registers/history", h.HandleGetRegisterHistory)

	// Device profiles
	apiGroup.GET("/device/profiles", h.HandleGetProfiles)
	apiGroup.POST("/device/profile", h.HandleSetProfile)

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	mode := "Serial"
	if cfg.Device.DemoMode {
		mode = "Demo (Simulated Device)"
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Switch Control Service                          ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Mode:       %-45s║\n", mode)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Profile:   %-46s║\n", profiles.Active().Name)
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	e.Logger.Fatal(e.StartServer(s))
}
