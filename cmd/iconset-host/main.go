package main

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"

	"appiconset/internal/config"
	"appiconset/internal/iconset"
	"appiconset/internal/imageio"
	"appiconset/internal/messaging"
)

func main() {
	// Log to the temp dir; stdout belongs to the protocol.
	logger := log.New(io.Discard, "", log.LstdFlags)
	f, err := os.OpenFile(config.GetHostLogFile(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		defer f.Close()
		logger.SetOutput(f)
	}

	logger.Printf("=== HOST STARTED (%s) ===", os.Args)

	// Capture Panics
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("CRITICAL PANIC: %v\nStack: %s", r, debug.Stack())
		}
	}()

	cfg, err := config.LoadDefault()
	if err != nil {
		logger.Printf("Config unusable, falling back to defaults: %v", err)
		cfg = config.Default()
	}

	if err := serve(messaging.NewConn(os.Stdin, os.Stdout), cfg, logger); err != nil {
		logger.Printf("Exiting: %v", err)
		return
	}
	logger.Println("Stdin closed. Exiting.")
}

// serve handles requests until the peer closes the stream, then waits for
// in-flight generations to deliver their final reply.
func serve(conn *messaging.Conn, cfg *config.Config, logger *log.Logger) error {
	var jobs sync.WaitGroup
	defer jobs.Wait()

	for {
		msg, err := conn.ReadMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		logger.Printf("RX: %s (ID: %s)", msg.Cmd, msg.Id)

		resp := messaging.Reply(msg)
		switch msg.Cmd {
		case messaging.CmdPing:
			resp.Status = messaging.StatusPong

		case messaging.CmdGenerate:
			if !startGenerate(conn, cfg, msg, resp, &jobs, logger) {
				break
			}
			// "started" has been sent; "finished" follows from the job.
			continue

		default:
			logger.Printf("Unknown Command: %s", msg.Cmd)
			resp.Status = messaging.StatusError
			resp.Error = "unknown_command"
		}

		logger.Printf("TX: %s - %s", resp.Cmd, resp.Status)
		if err := conn.WriteMessage(resp); err != nil {
			return err
		}
	}
}

// startGenerate kicks off a GENERATE request. It returns false with resp
// filled in as an error reply when the request cannot be started.
func startGenerate(conn *messaging.Conn, base *config.Config, msg, resp *messaging.Message, jobs *sync.WaitGroup, logger *log.Logger) bool {
	if msg.Source == "" || msg.Dest == "" {
		resp.Status = messaging.StatusError
		resp.Error = "source and dest are required"
		return false
	}

	src, err := imageio.Load(msg.Source)
	if err != nil {
		resp.Status = messaging.StatusError
		resp.Error = err.Error()
		return false
	}

	cfg := *base
	if len(msg.Sizes) > 0 {
		cfg.Sizes = msg.Sizes
	}
	if err := cfg.Validate(); err != nil {
		resp.Status = messaging.StatusError
		resp.Error = err.Error()
		return false
	}
	destDir := msg.Dest
	if cfg.SetName != "" {
		destDir = filepath.Join(msg.Dest, cfg.SetName)
	}

	states := iconset.New(&cfg, logger).Start(src, destDir)

	// The first state is always the busy signal.
	busy := <-states
	started := messaging.Reply(msg)
	started.Status = messaging.StatusStarted
	started.Busy = busy.Busy
	started.Message = busy.Message()
	if err := conn.WriteMessage(started); err != nil {
		logger.Printf("Write Error: %v", err)
	}

	jobs.Add(1)
	go func() {
		defer jobs.Done()
		for state := range states {
			if state.Busy {
				continue
			}
			finished := messaging.Reply(msg)
			finished.Status = messaging.StatusFinished
			finished.Message = state.Message()
			if data, err := json.Marshal(state.Report); err == nil {
				finished.Report = data
			}
			if state.Report.Status == iconset.Failure {
				finished.Error = state.Report.Err.Error()
			}
			logger.Printf("TX: %s - %s (%s)", finished.Cmd, finished.Status, state.Report.Status)
			if err := conn.WriteMessage(finished); err != nil {
				logger.Printf("Write Error: %v", err)
			}
		}
	}()
	return true
}
