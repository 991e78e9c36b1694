package service

import (
	"context"
	"reflect"
	"testing"

	"minutes/internal/core/extract"
	"minutes/internal/core/grammar"
	"minutes/internal/core/scanner"
	perr "minutes/internal/platform/errors"
	"minutes/internal/platform/store"
	"minutes/internal/platform/store/storetest"
	dom "minutes/internal/services/extract/domain"
	leadsrepo "minutes/internal/services/leads/repo"
	leadssvc "minutes/internal/services/leads/service"
	minrepo "minutes/internal/services/minutes/repo"
	minsvc "minutes/internal/services/minutes/service"
	songsrepo "minutes/internal/services/songs/repo"
	songssvc "minutes/internal/services/songs/service"
)

func wired(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := storetest.Memory(t)
	storetest.Exec(t, st,
		`INSERT INTO minutes (id, name, minutes) VALUES
			(1, 'One', CAST('John Smith led 42. Mary Jones led 49t.' AS BLOB)),
			(2, 'Two', CAST('Bo Fox led 128.' AS BLOB)),
			(3, 'Three', CAST('Amy Cole led 42.' AS BLOB))`,
		`INSERT INTO songs (id, page_num) VALUES (10, '42'), (11, '49t'), (12, '128')`,
		`INSERT INTO leaders (id, name) VALUES (20, 'John Smith'), (21, 'Mary Jones'), (22, 'Eva Lin')`,
		`INSERT INTO song_leader_joins (minutes_id, song_id, leader_id) VALUES (1, 10, 20), (1, 11, 22)`,
	)

	g, err := grammar.Minutes()
	if err != nil {
		t.Fatalf("grammar: %v", err)
	}
	s := New(scanner.New(g), songssvc.New(st.Lite, songsrepo.NewSQL()), nil, Config{Workers: 2, PageSize: 2})
	s.Minutes = minsvc.New(st.Lite, minrepo.NewSQL(), minsvc.Config{})
	leads := leadssvc.New(st.Lite, nil, leadsrepo.NewSQL())
	s.Leads, s.Recorded = leads, leads
	return s, st
}

func TestExtract_Text(t *testing.T) {
	s, _ := wired(t)
	res, err := s.Extract(context.Background(), "John Smith led 42. Mary Jones led 49t.", extract.Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := []extract.Record{{Leader: "John Smith", Song: "42"}, {Leader: "Mary Jones", Song: "49t"}}
	if !reflect.DeepEqual(res.Records, want) {
		t.Fatalf("records = %+v", res.Records)
	}
}

func TestTokens_SpaceFiltering(t *testing.T) {
	s, _ := wired(t)
	ctx := context.Background()
	all, err := s.Tokens(ctx, "Bo Fox led 128.", true)
	if err != nil {
		t.Fatalf("Tokens: %v", err)
	}
	trimmed, _ := s.Tokens(ctx, "Bo Fox led 128.", false)
	if len(trimmed) >= len(all) {
		t.Fatalf("spaces not dropped: %d vs %d", len(trimmed), len(all))
	}
	for _, tk := range trimmed {
		if tk.Name == "space" {
			t.Fatalf("space token leaked")
		}
	}
}

func TestGrammarInfo(t *testing.T) {
	s, _ := wired(t)
	info := s.Grammar()
	if info.Fingerprint == "" || len(info.Order) == 0 {
		t.Fatalf("info = %+v", info)
	}
	if len(info.Captures["song"]) == 0 {
		t.Fatalf("song captures missing: %v", info.Captures)
	}
}

func TestDocument_Evaluate(t *testing.T) {
	s, _ := wired(t)
	out, err := s.Document(context.Background(), 1, extract.Options{}, true)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if out.Minutes.Name != "One" || len(out.Result.Records) != 2 {
		t.Fatalf("out = %+v", out)
	}
	if out.Score == nil || out.Score.Matched != 1 || out.Score.Missing != 1 || out.Score.Extra != 1 {
		t.Fatalf("score = %+v", out.Score)
	}

	if _, err := s.Document(context.Background(), 404, extract.Options{}, false); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing doc err = %v", err)
	}
}

func TestRun_WritesLeads(t *testing.T) {
	s, st := wired(t)
	ctx := context.Background()

	sum, err := s.Run(ctx, dom.RunOptions{Evaluate: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Docs != 3 || sum.Records != 4 || sum.Failed != 0 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.Score == nil || sum.Score.Matched != 1 {
		t.Fatalf("score = %+v", sum.Score)
	}
	n, err := store.Scalar[int64](ctx, st.Lite, `SELECT COUNT(*) FROM leads WHERE run_id = $1`, sum.RunID.String())
	if err != nil || n != 4 {
		t.Fatalf("leads rows = %d err=%v", n, err)
	}
}

func TestRun_RangeAndDryRun(t *testing.T) {
	s, st := wired(t)
	ctx := context.Background()

	sum, err := s.Run(ctx, dom.RunOptions{From: 2, To: 2, DryRun: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Docs != 1 || sum.Records != 1 || sum.Score != nil {
		t.Fatalf("summary = %+v", sum)
	}
	n, _ := store.Scalar[int64](ctx, st.Lite, `SELECT COUNT(*) FROM leads`)
	if n != 0 {
		t.Fatalf("dry run wrote %d rows", n)
	}

	if _, err := s.Run(ctx, dom.RunOptions{From: 3, To: 1}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("inverted range err = %v", err)
	}
}

func TestRun_PageAboveMinutesLimit(t *testing.T) {
	s, st := wired(t)
	s.Minutes = minsvc.New(st.Lite, minrepo.NewSQL(), minsvc.Config{HardLimit: 1})

	sum, err := s.Run(context.Background(), dom.RunOptions{Page: 2, DryRun: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Docs != 3 || sum.Failed != 0 {
		t.Fatalf("summary = %+v, want all 3 documents", sum)
	}
}

func TestRun_Cancelled(t *testing.T) {
	s, _ := wired(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Run(ctx, dom.RunOptions{DryRun: true}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New(scanner.New(grammar.MustMinutes()), nil, nil, Config{})
	if s.Cfg.Workers != 4 || s.Cfg.PageSize != 200 {
		t.Fatalf("cfg = %+v", s.Cfg)
	}
	if s.Books.Resolve("Christian Harmony") != "CH" {
		t.Fatalf("default books not applied")
	}
	// no songs port: numbers pass through unchanged
	res, err := s.Extract(context.Background(), "Bo Fox led 128.", extract.Options{})
	if err != nil || len(res.Records) != 1 || res.Records[0].Song != "128" {
		t.Fatalf("res = %+v err=%v", res, err)
	}
}
