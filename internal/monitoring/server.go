package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// StatsDB is the part of *pgxpool.Pool the monitoring server uses
type StatsDB interface {
	Ping(ctx context.Context) error
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type MonitoringServer struct {
	db        StatsDB
	port      int
	hub       *Hub
	alerts    []Alert
	alertsMux sync.RWMutex
}

type Alert struct {
	ID        int       `json:"id"`
	Severity  string    `json:"severity"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type DashboardStats struct {
	DatabaseStatus  string  `json:"database_status"`
	ResponseTime    int64   `json:"response_time_ms"`
	Quotations      int     `json:"quotations"`
	Items           int     `json:"items"`
	DBSize          string  `json:"db_size"`
	CPUPercent      float64 `json:"cpu_percent"`
	MemoryPercent   float64 `json:"memory_percent"`
	MemoryUsed      string  `json:"memory_used"`
	MemoryTotal     string  `json:"memory_total"`
	DiskPercent     float64 `json:"disk_percent"`
	DiskUsed        string  `json:"disk_used"`
	DiskTotal       string  `json:"disk_total"`
	LiveSubscribers int     `json:"live_subscribers"`
	ActiveAlerts    int     `json:"active_alerts"`
}

func NewMonitoringServer(db StatsDB, port int, hub *Hub) *MonitoringServer {
	return &MonitoringServer{
		db:     db,
		port:   port,
		hub:    hub,
		alerts: make([]Alert, 0),
	}
}

// Router serves /stats, /alerts and the /ws item update feed
func (ms *MonitoringServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/stats", ms.getStats).Methods("GET")
	r.HandleFunc("/alerts", ms.getAlerts).Methods("GET")
	r.HandleFunc("/ws", ms.hub.ServeWS)
	return r
}

// Start blocks serving the monitoring port
func (ms *MonitoringServer) Start() {
	go ms.hub.Run()
	go ms.monitorHealth()

	addr := fmt.Sprintf(":%d", ms.port)
	log.Printf("[Monitoring] Running on %s", addr)
	log.Fatal(http.ListenAndServe(addr, ms.Router()))
}

func (ms *MonitoringServer) getStats(w http.ResponseWriter, r *http.Request) {
	stats := ms.collectStats(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (ms *MonitoringServer) getAlerts(w http.ResponseWriter, r *http.Request) {
	ms.alertsMux.RLock()
	defer ms.alertsMux.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ms.alerts)
}

func (ms *MonitoringServer) collectStats(ctx context.Context) DashboardStats {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := ms.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	stats := DashboardStats{
		DatabaseStatus:  "healthy",
		ResponseTime:    responseTime,
		LiveSubscribers: ms.hub.Subscribers(),
	}
	if err != nil {
		stats.DatabaseStatus = "unhealthy"
	} else {
		ms.db.QueryRow(ctx, "SELECT count(*) FROM quotations").Scan(&stats.Quotations)
		ms.db.QueryRow(ctx, "SELECT count(*) FROM items").Scan(&stats.Items)

		var dbSizeBytes int64
		ms.db.QueryRow(ctx, "SELECT pg_database_size(current_database())").Scan(&dbSizeBytes)
		stats.DBSize = formatBytes(uint64(dbSizeBytes))
	}

	// System metrics of the current host
	if cpuPercents, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(cpuPercents) > 0 {
		stats.CPUPercent = cpuPercents[0]
	}
	if memStats, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = memStats.UsedPercent
		stats.MemoryUsed = formatBytes(memStats.Used)
		stats.MemoryTotal = formatBytes(memStats.Total)
	}
	if diskStats, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = diskStats.UsedPercent
		stats.DiskUsed = formatBytes(diskStats.Used)
		stats.DiskTotal = formatBytes(diskStats.Total)
	}

	ms.alertsMux.RLock()
	stats.ActiveAlerts = len(ms.alerts)
	ms.alertsMux.RUnlock()
	return stats
}

func (ms *MonitoringServer) monitorHealth() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ms.checkHealth(context.Background())
	}
}

// checkHealth records an alert when the database is down or slow
func (ms *MonitoringServer) checkHealth(ctx context.Context) {
	stats := ms.collectStats(ctx)

	if stats.DatabaseStatus == "unhealthy" {
		ms.addAlert("critical", "database_down", "Database is unreachable")
	}
	if stats.ResponseTime > 1000 {
		ms.addAlert("warning", "high_latency", fmt.Sprintf("Database response time: %dms", stats.ResponseTime))
	}
}

func (ms *MonitoringServer) addAlert(severity, kind, message string) {
	ms.alertsMux.Lock()
	defer ms.alertsMux.Unlock()

	alert := Alert{
		ID:        len(ms.alerts) + 1,
		Severity:  severity,
		Type:      kind,
		Message:   message,
		Timestamp: time.Now(),
	}
	ms.alerts = append(ms.alerts, alert)
	// Keep the most recent alerts only
	if len(ms.alerts) > 100 {
		ms.alerts = ms.alerts[len(ms.alerts)-100:]
	}
	log.Printf("[Monitoring] %s alert: %s", severity, message)
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}
