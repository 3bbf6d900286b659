package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AgentConfig describes a player of a series. Search parameters are only set for samplers.
type AgentConfig struct {
	ID         int
	Name       string
	Seed       uint64
	Goroutines int
	Duration   time.Duration
	Episodes   int
	Cutoff     int
	Eval       string // Name of the evaluation function, empty for the default
}

type GameRecord struct {
	Game          int // Position in the series
	Agent1        int // AgentConfig.ID
	Agent2        int // AgentConfig.ID
	StartingAgent int // AgentConfig.ID playing as player 1
	WinnerAgent   int // AgentConfig.ID, 0 for a draw
	GameMetric
}

type MoveRecord struct {
	Game  uuid.UUID // GameMetric.ID
	Agent int       // AgentConfig.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

func NewWriter(dir, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// write stores a header and rows in a CSV file of the base directory
func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "seed", "goroutines", "duration", "episodes", "cutoff", "eval"}

	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Name,
			strconv.FormatUint(config.Seed, 10),
			strconv.Itoa(config.Goroutines),
			config.Duration.String(),
			strconv.Itoa(config.Episodes),
			strconv.Itoa(config.Cutoff),
			config.Eval,
		})
	}

	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{
		"id", "game", "agent1", "agent2", "starting_agent", "winner_agent", "winner", "timed_out",
		"num_cells", "connected", "rounds", "moves", "start_time", "end_time", "duration",
		"think_time1", "think_time2", "max_think_time1", "max_think_time2",
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID.String(),
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.StartingAgent),
			strconv.Itoa(record.WinnerAgent),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.TimedOut),
			strconv.Itoa(record.NumCells),
			strconv.FormatBool(record.Connected),
			strconv.Itoa(record.Rounds),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
			record.ThinkTimes[1].String(),
			record.ThinkTimes[2].String(),
			record.MaxThinkTime[1].String(),
			record.MaxThinkTime[2].String(),
		})
	}

	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{
		"game", "agent", "step", "player", "think_time", "transfers", "timed_out",
		"goroutines", "episodes", "candidates", "full_playouts",
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game.String(),
			strconv.Itoa(record.Agent),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.ThinkTime.String(),
			strconv.Itoa(record.Transfers),
			strconv.FormatBool(record.TimedOut),
			strconv.Itoa(record.Goroutines),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.Candidates),
			strconv.Itoa(record.FullPlayouts),
		})
	}

	return w.write("move_records.csv", header, rows)
}
