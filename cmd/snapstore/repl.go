package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	snapstore "github.com/tarantool/go-snapstore"
	"github.com/tarantool/go-snapstore/hasher"
)

const helpText = `Commands:
  PUT <key> <value>          write value at the current epoch
  DEL <key>                  delete key at the current epoch
  GET <key> <snapshot>       read key as of snapshot
  SNAP                       take a snapshot
  DROP <snapshot>            delete a snapshot
  RANGE <snapshot> [prefix]  list keys visible at snapshot
  HISTORY <key>              show the version chain of key
  DIGEST <snapshot> [hash]   hash the contents of snapshot (sha256, sha1)
  COMPACT                    drop history no live snapshot can read
  HELP                       show this message
  EXIT                       leave`

var (
	errArguments = errors.New("wrong number of arguments")
	errCommand   = errors.New("unknown command")
	errQuit      = errors.New("quit")
)

const prompt = "snapstore> "

type repl struct {
	store  *snapstore.Store
	logger *zap.Logger
	out    io.Writer
	prompt string
}

func newREPL(logger *zap.Logger, out io.Writer) *repl {
	return &repl{
		store:  snapstore.New(snapstore.WithLogger(logger)),
		logger: logger,
		out:    out,
		prompt: "",
	}
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// Serve reads commands line by line until EOF or EXIT.
func (r *repl) Serve(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	if isTerminal(in) {
		r.prompt = prompt
	}

	for {
		fmt.Fprint(r.out, r.prompt)

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		err := r.handle(line)

		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			fmt.Fprintf(r.out, "ERR %s: %s\n", snapstore.KindOf(err), err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func parseSnapshot(raw string) (snapstore.SnapshotID, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snapshot id %q: %w", raw, err)
	}

	return snapstore.SnapshotID(id), nil
}

func (r *repl) handle(line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	args := strings.Fields(rest)

	switch strings.ToUpper(cmd) {
	case "PUT":
		key, value, ok := strings.Cut(strings.TrimSpace(rest), " ")
		if !ok {
			return errArguments
		}

		return r.ok(r.store.Put(key, []byte(value)))
	case "DEL", "DELETE":
		if len(args) != 1 {
			return errArguments
		}

		return r.ok(r.store.Delete(args[0]))
	case "GET":
		if len(args) != 2 {
			return errArguments
		}

		id, err := parseSnapshot(args[1])
		if err != nil {
			return err
		}

		value, err := r.store.Get(args[0], id)
		if err != nil {
			return err
		}

		fmt.Fprintf(r.out, "%s\n", value)
	case "SNAP", "SNAPSHOT":
		fmt.Fprintf(r.out, "%d\n", r.store.TakeSnapshot())
	case "DROP":
		if len(args) != 1 {
			return errArguments
		}

		id, err := parseSnapshot(args[0])
		if err != nil {
			return err
		}

		return r.ok(r.store.DeleteSnapshot(id))
	case "RANGE":
		return r.rangeCmd(args)
	case "HISTORY":
		return r.history(args)
	case "DIGEST":
		return r.digest(args)
	case "COMPACT":
		stats := r.store.Compact()
		fmt.Fprintf(r.out, "floor=%d keys=%d dropped=%d\n", stats.Floor, stats.Keys, stats.Dropped)
	case "HELP":
		fmt.Fprintln(r.out, helpText)
	case "EXIT", "QUIT":
		return errQuit
	default:
		return fmt.Errorf("%w: %s", errCommand, cmd)
	}

	return nil
}

func (r *repl) ok(err error) error {
	if err == nil {
		fmt.Fprintln(r.out, "OK")
	}

	return err
}

func (r *repl) rangeCmd(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errArguments
	}

	id, err := parseSnapshot(args[0])
	if err != nil {
		return err
	}

	var opts []snapstore.RangeOption
	if len(args) == 2 {
		opts = append(opts, snapstore.WithPrefix(args[1]))
	}

	kvs, err := r.store.Range(id, opts...)
	if err != nil {
		return err
	}

	for _, pair := range kvs {
		fmt.Fprintf(r.out, "%s=%s\n", pair.Key, pair.Value)
	}

	fmt.Fprintf(r.out, "(%d keys)\n", len(kvs))

	return nil
}

func (r *repl) history(args []string) error {
	if len(args) != 1 {
		return errArguments
	}

	entries, err := r.store.Versions(args[0])
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if value, ok := entry.Value.Get(); ok {
			fmt.Fprintf(r.out, "@%d %s\n", entry.Epoch, value)
		} else {
			fmt.Fprintf(r.out, "@%d <deleted>\n", entry.Epoch)
		}
	}

	return nil
}

func (r *repl) digest(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errArguments
	}

	id, err := parseSnapshot(args[0])
	if err != nil {
		return err
	}

	name := "sha256"
	if len(args) == 2 {
		name = args[1]
	}

	h, err := hasher.ByName(name)
	if err != nil {
		return err
	}

	sum, err := r.store.Digest(id, h)
	if err != nil {
		return err
	}

	r.logger.Debug("digest computed", zap.Uint64("snapshot", uint64(id)), zap.String("hasher", h.Name()))
	fmt.Fprintf(r.out, "%s:%s\n", h.Name(), hex.EncodeToString(sum))

	return nil
}
