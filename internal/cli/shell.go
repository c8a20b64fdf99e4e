// Package cli implements the interactive console for the roster: it tokenizes
// command lines, dispatches them to the application services and prints the
// displayed list after commands that change it.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/tutorly/roster/internal/application"
	"github.com/tutorly/roster/internal/logging"
	"github.com/tutorly/roster/internal/roster"
)

const prompt = "> "

// Result is the outcome of one command line.
type Result struct {
	Message string
	// ShowList asks the caller to print the displayed list.
	ShowList bool
	// Mutated reports that the roster changed and should be saved.
	Mutated bool
	Exit    bool
}

// Options configures optional shell collaborators.
type Options struct {
	// Store persists the roster after mutating commands. Nil disables saving.
	Store  *application.RosterStore
	Logger *slog.Logger
	// IDGenerator produces command correlation ids. Defaults to random UUIDs.
	IDGenerator func() string
}

type handler struct {
	usage string
	run   func(ctx context.Context, args string) (Result, error)
}

// Shell executes roster commands one line at a time.
type Shell struct {
	roster    *roster.Roster
	store     *application.RosterStore
	logger    *slog.Logger
	newID     func() string
	persons   *application.PersonService
	matches   *application.MatchService
	sessions  *application.SessionService
	recommend *application.RecommendService
	sorter    *application.SortService
	stats     *application.StatsService
	handlers  map[string]handler
	words     []string
}

// NewShell wires the services over r.
func NewShell(r *roster.Roster, opts Options) *Shell {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	newID := opts.IDGenerator
	if newID == nil {
		newID = func() string { return uuid.NewString() }
	}

	s := &Shell{
		roster:    r,
		store:     opts.Store,
		logger:    logger.With("component", "cli"),
		newID:     newID,
		persons:   application.NewPersonServiceWithLogger(r, logger),
		matches:   application.NewMatchServiceWithLogger(r, logger),
		sessions:  application.NewSessionServiceWithLogger(r, logger),
		recommend: application.NewRecommendServiceWithLogger(r, logger),
		sorter:    application.NewSortServiceWithLogger(r, logger),
		stats:     application.NewStatsServiceWithLogger(r, logger),
	}
	s.register()
	return s
}

func (s *Shell) register() {
	s.handlers = map[string]handler{
		"add":           {usageAdd, s.add},
		"edit":          {usageEdit, s.edit},
		"delete":        {usageDelete, s.delete},
		"list":          {usageList, s.list},
		"find":          {usageFind, s.find},
		"match":         {usageMatch, s.match},
		"unmatch":       {usageUnmatch, s.unmatch},
		"sessionadd":    {usageSessionAdd, s.sessionAdd},
		"sessiondelete": {usageSessionDelete, s.sessionDelete},
		"recommend":     {usageRecommend, s.recommendPersons},
		"sort":          {usageSort, s.sort},
		"stats":         {usageStats, s.showStats},
		"help":          {usageHelp, s.help},
		"exit":          {usageExit, s.exit},
	}
	s.words = []string{"add", "edit", "delete", "list", "find", "match", "unmatch",
		"sessionadd", "sessiondelete", "recommend", "sort", "stats", "help", "exit"}
}

// Execute runs a single command line against the roster. Errors are
// user-facing and leave the roster unchanged.
func (s *Shell) Execute(ctx context.Context, line string) (result Result, err error) {
	word, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	word = strings.ToLower(word)

	logger := s.logger.With("command_id", s.newID(), "command", word)
	ctx = logging.ContextWithLogger(ctx, logger)
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "command failed", "error", err, "error_kind", errorKind(err))
			return
		}
		logger.DebugContext(ctx, "command executed", "mutated", result.Mutated)
	}()

	h, ok := s.handlers[word]
	if !ok {
		err = fmt.Errorf("%w: %q, type help to see every command", ErrUnknownCommand, word)
		return
	}
	return h.run(ctx, args)
}

// Run reads commands from in until exit, end of input or ctx is done. Command
// errors are printed and the loop continues; only I/O and save failures stop it.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(out, prompt)
			continue
		}

		result, err := s.Execute(ctx, line)
		if err != nil {
			fmt.Fprintln(out, userMessage(err))
			fmt.Fprint(out, prompt)
			continue
		}

		fmt.Fprintln(out, result.Message)
		if result.ShowList {
			s.printList(out)
		}
		if result.Mutated && s.store != nil {
			if err := s.store.Save(ctx, s.roster); err != nil {
				return fmt.Errorf("cli: save roster: %w", err)
			}
		}
		if result.Exit {
			return nil
		}
		fmt.Fprint(out, prompt)
	}
	return scanner.Err()
}

func (s *Shell) printList(out io.Writer) {
	for i, person := range s.roster.Filtered() {
		fmt.Fprintf(out, "%d. %s\n", i+1, person)
	}
}

// userMessage strips package prefixes from sentinel errors for display.
func userMessage(err error) string {
	msg := err.Error()
	for _, prefix := range []string{"application: ", "roster: ", "cli: "} {
		msg = strings.ReplaceAll(msg, prefix, "")
	}
	return msg
}

func (s *Shell) add(ctx context.Context, args string) (Result, error) {
	params, err := parseAdd(args)
	if err != nil {
		return Result{}, err
	}
	person, err := s.persons.Add(ctx, params)
	if err != nil {
		return Result{}, err
	}
	return Result{Message: "New person added: " + person.String(), ShowList: true, Mutated: true}, nil
}

func (s *Shell) edit(ctx context.Context, args string) (Result, error) {
	params, err := parseEdit(args)
	if err != nil {
		return Result{}, err
	}
	person, err := s.persons.Edit(ctx, params)
	if err != nil {
		return Result{}, err
	}
	return Result{Message: "Edited Person: " + person.String(), ShowList: true, Mutated: true}, nil
}

func (s *Shell) delete(ctx context.Context, args string) (Result, error) {
	index, err := parseIndex(args)
	if err != nil {
		return Result{}, usageError(usageDelete)
	}
	person, err := s.persons.Delete(ctx, index)
	if err != nil {
		return Result{}, err
	}
	return Result{Message: "Deleted Person: " + person.String(), ShowList: true, Mutated: true}, nil
}

func (s *Shell) list(ctx context.Context, _ string) (Result, error) {
	return Result{Message: s.persons.List(ctx), ShowList: true}, nil
}

func (s *Shell) find(ctx context.Context, args string) (Result, error) {
	params, err := parseFind(args)
	if err != nil {
		return Result{}, err
	}
	msg, err := s.persons.Find(ctx, params)
	if err != nil {
		return Result{}, err
	}
	return Result{Message: msg, ShowList: true}, nil
}

func (s *Shell) match(ctx context.Context, args string) (Result, error) {
	params, err := parseMatch(args)
	if err != nil {
		return Result{}, err
	}
	msg, err := s.matches.Match(ctx, params)
	if err != nil {
		return Result{}, err
	}
	return Result{Message: msg, ShowList: true, Mutated: true}, nil
}

func (s *Shell) unmatch(ctx context.Context, args string) (Result, error) {
	id, err := parseUnmatch(args)
	if err != nil {
		return Result{}, err
	}
	msg, err := s.matches.Unmatch(ctx, id)
	if err != nil {
		return Result{}, err
	}
	return Result{Message: msg, ShowList: true, Mutated: true}, nil
}

func (s *Shell) sessionAdd(ctx context.Context, args string) (Result, error) {
	params, err := parseSessionAdd(args)
	if err != nil {
		return Result{}, err
	}
	msg, err := s.sessions.AddSession(ctx, params)
	if err != nil {
		return Result{}, err
	}
	return Result{Message: msg, ShowList: true, Mutated: true}, nil
}

func (s *Shell) sessionDelete(ctx context.Context, args string) (Result, error) {
	index, err := parseIndex(args)
	if err != nil {
		return Result{}, usageError(usageSessionDelete)
	}
	msg, err := s.sessions.DeleteSession(ctx, index)
	if err != nil {
		return Result{}, err
	}
	return Result{Message: msg, ShowList: true, Mutated: true}, nil
}

func (s *Shell) recommendPersons(ctx context.Context, args string) (Result, error) {
	params, err := parseRecommend(args)
	if err != nil {
		return Result{}, err
	}
	msg, err := s.recommend.Recommend(ctx, params)
	if err != nil {
		return Result{}, err
	}
	return Result{Message: msg, ShowList: true}, nil
}

func (s *Shell) sort(ctx context.Context, args string) (Result, error) {
	params, err := parseSort(args)
	if err != nil {
		return Result{}, err
	}
	msg, err := s.sorter.Sort(ctx, params)
	if err != nil {
		return Result{}, err
	}
	return Result{Message: msg, ShowList: true}, nil
}

func (s *Shell) showStats(ctx context.Context, _ string) (Result, error) {
	stats, err := s.stats.Stats(ctx)
	if err != nil {
		return Result{}, err
	}
	return Result{Message: stats.String()}, nil
}

func (s *Shell) help(context.Context, string) (Result, error) {
	usages := make([]string, len(s.words))
	for i, word := range s.words {
		usages[i] = s.handlers[word].usage
	}
	return Result{Message: strings.Join(usages, "\n\n")}, nil
}

func (s *Shell) exit(context.Context, string) (Result, error) {
	return Result{Message: "Exiting roster as requested ...", Exit: true}, nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrUnknownCommand):
		return "unknown_command"
	case errors.Is(err, ErrInvalidFormat):
		return "invalid_format"
	}
	return application.ErrorKind(err)
}
