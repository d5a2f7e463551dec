// Package influx pushes run statistics to InfluxDB, falling back to a
// gzip line-protocol file when the server is unreachable.
package influx

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/rs/zerolog"

	"github.com/eventpy/eventpy/internal/transpile"
)

const (
	runMeasurement        = "eventpy_run"
	diagnosticMeasurement = "eventpy_diagnostics"
	retentionSeconds      = 60 * 60 * 24 * 90 // 90 days
)

// Options locate the server and the fallback file.
type Options struct {
	URL        string
	Token      string
	Org        string
	Bucket     string
	BackupPath string
}

// Manager handles the InfluxDB connection and writes.
type Manager struct {
	Client       influxdb2.Client
	Writer       influxdb2_api.WriteAPIBlocking
	BackupWriter *gzip.Writer
	IsValid      bool
	Logger       zerolog.Logger

	opts       Options
	backupFile io.Closer
}

// NewManager creates a new InfluxDB manager.
func NewManager(log zerolog.Logger, opts Options) *Manager {
	return &Manager{
		IsValid: false,
		Logger:  log,
		opts:    opts,
	}
}

// Connect establishes a connection to InfluxDB. When the server does not
// answer, points go to the backup file instead.
func (m *Manager) Connect(ctx context.Context) error {
	m.Client = influxdb2.NewClientWithOptions(m.opts.URL, m.opts.Token,
		influxdb2.DefaultOptions().SetHTTPRequestTimeout(10))

	running, err := m.Client.Ping(ctx)
	if err != nil || !running {
		m.IsValid = false
		m.Logger.Info().Str("backupPath", m.opts.BackupPath).
			Msg("Failed to reach InfluxDB, writing to backup file")
		return m.openBackup()
	}

	if err := m.ensureBucket(ctx); err != nil {
		return err
	}
	m.Writer = m.Client.WriteAPIBlocking(m.opts.Org, m.opts.Bucket)
	m.IsValid = true
	m.Logger.Info().Str("bucket", m.opts.Bucket).Msg("InfluxDB client initialized")
	return nil
}

func (m *Manager) openBackup() error {
	if m.BackupWriter != nil {
		return nil
	}
	if m.opts.BackupPath == "" {
		return fmt.Errorf("influxDB unreachable and no backup path set")
	}
	file, err := os.OpenFile(m.opts.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error creating backup file: %v", err)
	}
	m.backupFile = file
	m.BackupWriter = gzip.NewWriter(file)
	return nil
}

func (m *Manager) ensureBucket(ctx context.Context) error {
	if _, err := m.Client.BucketsAPI().FindBucketByName(ctx, m.opts.Bucket); err == nil {
		return nil
	}

	org, err := m.Client.OrganizationsAPI().FindOrganizationByName(ctx, m.opts.Org)
	if err != nil {
		m.Logger.Info().Str("org", m.opts.Org).Msg("Organization not found, creating")
		org, err = m.Client.OrganizationsAPI().CreateOrganizationWithName(ctx, m.opts.Org)
		if err != nil {
			return fmt.Errorf("error creating organization %s: %w", m.opts.Org, err)
		}
	}

	m.Logger.Info().Str("bucket", m.opts.Bucket).Msg("Bucket not found, creating")
	rule := domain.RetentionRuleTypeExpire
	_, err = m.Client.BucketsAPI().CreateBucketWithName(ctx, org, m.opts.Bucket, domain.RetentionRule{
		Type:         &rule,
		EverySeconds: retentionSeconds,
	})
	if err != nil {
		return fmt.Errorf("error creating bucket %s: %w", m.opts.Bucket, err)
	}
	return nil
}

// WritePoints writes points to InfluxDB or the backup file.
func (m *Manager) WritePoints(ctx context.Context, points ...*influxdb2_write.Point) error {
	if m.IsValid {
		if err := m.Writer.WritePoint(ctx, points...); err != nil {
			return fmt.Errorf("error sending data to InfluxDB: %w", err)
		}
		return nil
	}

	if m.BackupWriter == nil {
		return fmt.Errorf("influxDB client not initialized and backup writer not available")
	}
	for _, p := range points {
		line := influxdb2_write.PointToLineProtocol(p, time.Nanosecond)
		if _, err := m.BackupWriter.Write([]byte(line + "\n")); err != nil {
			return fmt.Errorf("error writing to InfluxDB backup file: %s", err)
		}
	}
	return nil
}

// Close flushes the backup file and releases the client.
func (m *Manager) Close() error {
	var err error
	if m.BackupWriter != nil {
		err = m.BackupWriter.Close()
		if m.backupFile != nil {
			if cerr := m.backupFile.Close(); err == nil {
				err = cerr
			}
		}
	}
	if m.Client != nil {
		m.Client.Close()
	}
	return err
}

// RunPoints describes a finished run: one run point plus one point per
// diagnostic kind that occurred.
func RunPoints(source string, r *transpile.Report) []*influxdb2_write.Point {
	ts := r.Started.Add(r.Duration)
	tags := map[string]string{
		"variant": r.Variant.String(),
		"policy":  r.Policy.String(),
		"source":  source,
	}

	diags := r.Diagnostics()
	points := []*influxdb2_write.Point{
		influxdb2.NewPoint(runMeasurement, tags, map[string]interface{}{
			"events":      len(r.Events),
			"translated":  r.Translated,
			"failed":      r.Failed,
			"diagnostics": len(diags),
			"duration_ms": r.Duration.Milliseconds(),
		}, ts),
	}

	counts := make(map[string]int)
	for _, d := range diags {
		counts[d.Kind.String()]++
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	for _, k := range kinds {
		p := influxdb2_write.NewPointWithMeasurement(diagnosticMeasurement).
			AddTag("variant", r.Variant.String()).
			AddTag("source", source).
			AddTag("kind", k).
			AddField("count", counts[k]).
			SetTime(ts)
		points = append(points, p)
	}
	return points
}
