package rewrite

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
	"github.com/dazhiyu0235/post-rewriter/bloom"
	"golang.org/x/time/rate"
)

// Task types accepted in a batch file.
const (
	TaskUpdate = "update"
	TaskCopy   = "copy"
)

// DefaultBatchDelay spaces out consecutive batch operations so the
// remote site is not hammered.
const DefaultBatchDelay = 2 * time.Second

// Task is a single batch operation parsed from one line of input.
type Task struct {
	// Line is the 1-based line number the task was parsed from.
	Line int

	// Type is TaskUpdate or TaskCopy.
	Type string

	TargetURL string

	// SourceURL and Keyword apply to copy tasks only.
	SourceURL string
	Keyword   string
}

// ParseTasks reads pipe-delimited tasks from r, one per line:
//
//	update|<target-url>
//	copy|<target-url>|<source-url>[|<keyword>]
//
// Blank lines and lines starting with # are skipped. Malformed lines
// are dropped with a warning rather than aborting the batch.
func ParseTasks(r io.Reader, logger *slog.Logger) ([]Task, error) {
	var tasks []Task
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		fields := strings.Split(raw, "|")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		task := Task{Line: line, Type: fields[0]}
		switch {
		case task.Type == TaskUpdate && len(fields) == 2 && fields[1] != "":
			task.TargetURL = fields[1]
		case task.Type == TaskCopy && (len(fields) == 3 || len(fields) == 4) && fields[1] != "" && fields[2] != "":
			task.TargetURL = fields[1]
			task.SourceURL = fields[2]
			if len(fields) == 4 {
				task.Keyword = fields[3]
			}
		default:
			logger.Warn("skipping malformed batch line", "line", line, "text", raw)
			continue
		}
		tasks = append(tasks, task)
	}
	if err := sc.Err(); err != nil {
		return nil, postrewriter.Errorf(postrewriter.EINVALID, "reading batch input: %v", err)
	}
	return tasks, nil
}

// BatchResult summarizes a batch run.
type BatchResult struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
}

// RunBatch executes the tasks sequentially. Duplicate target URLs are
// skipped, operations are rate limited, and individual failures are
// counted but never abort the run.
func (r *Rewriter) RunBatch(ctx context.Context, tasks []Task, dryRun bool) (*BatchResult, error) {
	delay := r.BatchDelay
	if delay <= 0 {
		delay = DefaultBatchDelay
	}

	seen := bloom.NewFilter(uint(max(len(tasks), 1)), 0.01)
	limiter := rate.NewLimiter(rate.Every(delay), 1)

	result := &BatchResult{Total: len(tasks)}
	for _, task := range tasks {
		if seen.Seen(task.TargetURL) {
			r.Logger.Warn("skipping duplicate target", "line", task.Line, "target", task.TargetURL)
			result.Skipped++
			continue
		}
		seen.Add(task.TargetURL)

		if err := limiter.Wait(ctx); err != nil {
			return result, err
		}

		var err error
		switch task.Type {
		case TaskUpdate:
			err = r.UpdateArticle(ctx, task.TargetURL, dryRun)
		case TaskCopy:
			err = r.CopyContent(ctx, task.TargetURL, task.SourceURL, task.Keyword, dryRun)
		}
		if err != nil {
			r.Logger.Error("batch task failed",
				"line", task.Line,
				"type", task.Type,
				"target", task.TargetURL,
				"err", postrewriter.ErrorMessage(err),
			)
			result.Failed++
			continue
		}
		result.Succeeded++
	}

	r.Logger.Info("batch complete",
		"total", result.Total,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return result, nil
}
