package extract

import (
	"errors"
	"iter"
	"reflect"
	"slices"
	"testing"

	"minutes/internal/core/grammar"
	"minutes/internal/core/scanner"
)

type songSet map[string]bool

func (s songSet) Contains(id string) bool { return s[id] }

type bookMap map[string]string

func (b bookMap) Resolve(title string) string {
	if v, ok := b[title]; ok {
		return v
	}
	return title
}

func leaderTok(first, last string) scanner.Token {
	return scanner.Token{
		Name: "leader_list",
		Text: first + " " + last,
		Captures: map[string][]scanner.Capture{
			"first": {{Offset: 0, Text: first}},
			"last":  {{Offset: len(first) + 1, Text: last}},
		},
	}
}

func songTok(caps map[string]string) scanner.Token {
	tk := scanner.Token{Name: "song", Captures: map[string][]scanner.Capture{}}
	for k, v := range caps {
		tk.Captures[k] = []scanner.Capture{{Text: v}}
		tk.Text += v
	}
	return tk
}

func page(n string) scanner.Token { return songTok(map[string]string{"number": n}) }

func plain(name, text string) scanner.Token { return scanner.Token{Name: name, Text: text} }

func kinds(ds []Diagnostic) []DiagnosticKind {
	out := make([]DiagnosticKind, len(ds))
	for i, d := range ds {
		out[i] = d.Kind
	}
	return out
}

func TestExtract_LeaderThenSong(t *testing.T) {
	e := New(songSet{"42": true}, nil, Options{})
	res := e.Extract([]scanner.Token{leaderTok("John", "Smith"), page("42")})

	want := []Record{{Leader: "John Smith", Song: "42"}}
	if !reflect.DeepEqual(res.Records, want) {
		t.Fatalf("records = %+v, want %+v", res.Records, want)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %+v", res.Diagnostics)
	}
}

func TestExtract_SongWithoutLeader(t *testing.T) {
	res := New(nil, nil, Options{}).Extract([]scanner.Token{page("42")})
	if len(res.Records) != 0 {
		t.Fatalf("records = %+v", res.Records)
	}
	if got := kinds(res.Diagnostics); !slices.Equal(got, []DiagnosticKind{MissingLeader}) {
		t.Fatalf("diagnostics = %v", got)
	}
	if res.Diagnostics[0].Token != "song" || res.Diagnostics[0].Text != "42" {
		t.Fatalf("diagnostic should carry the token: %+v", res.Diagnostics[0])
	}
}

func TestExtract_IgnoreLeaderRegionEndsAtSentence(t *testing.T) {
	e := New(songSet{"42": true, "43": true}, nil, Options{})
	res := e.Extract([]scanner.Token{
		plain("ignore_leader", "in memory of "),
		leaderTok("John", "Smith"),
		page("42"),
		plain("sentence", "."),
		leaderTok("Mary", "Jones"),
		page("43"),
	})

	want := []Record{{Leader: "Mary Jones", Song: "43"}}
	if !reflect.DeepEqual(res.Records, want) {
		t.Fatalf("records = %+v, want %+v", res.Records, want)
	}
	if got := kinds(res.Diagnostics); !slices.Equal(got, []DiagnosticKind{IgnoredLeader, MissingLeader}) {
		t.Fatalf("diagnostics = %v", got)
	}
	if !slices.Equal(res.Diagnostics[0].Names, []string{"John Smith"}) {
		t.Fatalf("ignored names = %v", res.Diagnostics[0].Names)
	}
}

func TestExtract_IgnoredLeaderKeepsCurrentLeader(t *testing.T) {
	e := New(nil, nil, Options{})
	res := e.Extract([]scanner.Token{
		leaderTok("Amy", "Cole"),
		plain("ignore_leader", "for "),
		leaderTok("Ann", "Lee"),
		page("12"),
	})
	want := []Record{{Leader: "Amy Cole", Song: "12"}}
	if !reflect.DeepEqual(res.Records, want) {
		t.Fatalf("records = %+v, want %+v", res.Records, want)
	}
}

func TestExtract_IgnoreSong(t *testing.T) {
	e := New(nil, nil, Options{})
	res := e.Extract([]scanner.Token{
		leaderTok("John", "Smith"),
		plain("ignore_song", "reported "),
		page("42"),
		plain("paragraph", "\n"),
		leaderTok("John", "Smith"),
		page("42"),
	})
	if len(res.Records) != 1 {
		t.Fatalf("records = %+v", res.Records)
	}
	if got := kinds(res.Diagnostics); !slices.Equal(got, []DiagnosticKind{IgnoredSong}) {
		t.Fatalf("diagnostics = %v", got)
	}
}

func TestExtract_RoleBinding(t *testing.T) {
	res := New(nil, nil, Options{}).Extract([]scanner.Token{
		plain("role", "Chairman"),
		leaderTok("John", "Smith"),
		plain("role", "Chairman"),
		leaderTok("Mary", "Jones"),
		leaderTok("Eva", "Lin"),
	})
	if got := res.Offices["Chairman"]; !slices.Equal(got, []string{"John Smith", "Mary Jones"}) {
		t.Fatalf("Chairman = %v", got)
	}
	if len(res.Offices) != 1 {
		t.Fatalf("role must bind only the next leader list: %v", res.Offices)
	}
}

func TestExtract_RoleBindsEvenWhenIgnored(t *testing.T) {
	res := New(nil, nil, Options{}).Extract([]scanner.Token{
		plain("ignore_leader", "on behalf of "),
		plain("role", "Secretary"),
		leaderTok("Ann", "Lee"),
	})
	if got := res.Offices["Secretary"]; !slices.Equal(got, []string{"Ann Lee"}) {
		t.Fatalf("Secretary = %v", got)
	}
}

func TestExtract_SessionBreaks(t *testing.T) {
	toks := []scanner.Token{
		leaderTok("John", "Smith"),
		plain("ignore_song", "report "),
		plain("session", "AFTERNOON SESSION"),
		page("42"),
	}

	res := New(nil, nil, Options{Breaks: true}).Extract(toks)
	want := []Record{{Leader: "AFTERNOON SESSION", Song: BreakSong}}
	if !reflect.DeepEqual(res.Records, want) || !res.Records[0].IsBreak() {
		t.Fatalf("records = %+v, want %+v", res.Records, want)
	}
	// a session leaves the ignore flags alone
	if got := kinds(res.Diagnostics); !slices.Equal(got, []DiagnosticKind{IgnoredSong}) {
		t.Fatalf("diagnostics = %v", got)
	}

	res = New(nil, nil, Options{}).Extract(toks)
	if len(res.Records) != 0 {
		t.Fatalf("breaks disabled: records = %+v", res.Records)
	}
}

func TestExtract_SongResolution(t *testing.T) {
	songs := songSet{"42": true, "49": true, "128": true}
	books := bookMap{"Christian Harmony": "CH"}

	cases := []struct {
		name string
		opts Options
		caps map[string]string
		want string // "" means MissingSong
	}{
		{name: "known page", caps: map[string]string{"number": "42"}, want: "42"},
		{name: "trim top", caps: map[string]string{"number": "49t"}, want: "49"},
		{name: "trim bottom upper", caps: map[string]string{"number": "128B"}, want: "128"},
		{name: "unknown kept", caps: map[string]string{"number": "500"}, want: "500"},
		{name: "unknown suffix kept lower", caps: map[string]string{"number": "77T"}, want: "77t"},
		{name: "strict rejects", opts: Options{StrictSongs: true}, caps: map[string]string{"number": "500"}},
		{name: "strict trims", opts: Options{StrictSongs: true}, caps: map[string]string{"number": "49b"}, want: "49"},
		{name: "book prefix", caps: map[string]string{"number": "128", "book": "Christian Harmony "}, want: "CH 128"},
		{name: "book keeps raw number", caps: map[string]string{"number": "49T", "book": "Christian Harmony"}, want: "CH 49T"},
		{name: "unknown book", caps: map[string]string{"number": "12", "book": "Sacred Harp"}, want: "Sacred Harp 12"},
		{name: "title off", caps: map[string]string{"title": "Sweet Home"}},
		{name: "title on", opts: Options{SongTitles: true}, caps: map[string]string{"title": "Sweet Home"}, want: "Sweet Home"},
		{name: "title singing", opts: Options{SongTitles: true}, caps: map[string]string{"title": "All Day Singing"}},
		{name: "title with book", opts: Options{SongTitles: true}, caps: map[string]string{"title": "Sweet Home", "book": "Christian Harmony"}, want: "CH Sweet Home"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := New(songs, books, tc.opts)
			res := e.Extract([]scanner.Token{leaderTok("John", "Smith"), songTok(tc.caps)})
			if tc.want == "" {
				if len(res.Records) != 0 || !slices.Equal(kinds(res.Diagnostics), []DiagnosticKind{MissingSong}) {
					t.Fatalf("want MissingSong, got records=%+v diags=%+v", res.Records, res.Diagnostics)
				}
				return
			}
			if len(res.Records) != 1 || res.Records[0].Song != tc.want {
				t.Fatalf("records = %+v, want song %q", res.Records, tc.want)
			}
		})
	}
}

func TestExtract_UnnamedLeader(t *testing.T) {
	tk := scanner.Token{
		Name:     "leader_list",
		Text:     "John",
		Captures: map[string][]scanner.Capture{"first": {{Text: "John"}}},
	}
	res := New(nil, nil, Options{}).Extract([]scanner.Token{tk, page("42")})
	if got := kinds(res.Diagnostics); !slices.Equal(got, []DiagnosticKind{UnnamedLeader, MissingLeader}) {
		t.Fatalf("diagnostics = %v", got)
	}
}

func TestExtract_BareSurnameLeads(t *testing.T) {
	smith := scanner.Token{
		Name:     "leader_list",
		Text:     "Smith",
		Captures: map[string][]scanner.Capture{"last": {{Offset: 0, Text: "Smith"}}},
	}
	res := New(nil, nil, Options{}).Extract([]scanner.Token{smith, page("42")})
	if want := []Record{{Leader: "Smith", Song: "42"}}; !slices.Equal(res.Records, want) {
		t.Fatalf("records = %+v, want %+v", res.Records, want)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v", kinds(res.Diagnostics))
	}
}

func TestExtract_EmptyLeaderListIsUnnamed(t *testing.T) {
	empty := scanner.Token{Name: "leader_list", Text: "and"}
	res := New(nil, nil, Options{}).Extract([]scanner.Token{empty, page("42")})
	if got := kinds(res.Diagnostics); !slices.Equal(got, []DiagnosticKind{UnnamedLeader, MissingLeader}) {
		t.Fatalf("diagnostics = %v", got)
	}
}

func TestRun_StopsOnScanError(t *testing.T) {
	boom := errors.New("boom")
	seq := iter.Seq2[scanner.Token, error](func(yield func(scanner.Token, error) bool) {
		if !yield(leaderTok("John", "Smith"), nil) {
			return
		}
		if !yield(page("42"), nil) {
			return
		}
		yield(scanner.Token{}, boom)
	})
	res, err := New(nil, nil, Options{}).Run(seq)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("records before the error should be kept: %+v", res.Records)
	}
}

func TestKindOf(t *testing.T) {
	for _, name := range []string{"paragraph", "space", "session", "ignore_song", "song", "role",
		"leader_list", "date", "ignore_leader", "word", "sentence", "anything"} {
		k := KindOf(name)
		if k == Other || k.String() != name {
			t.Fatalf("KindOf(%q) = %v", name, k)
		}
	}
	if KindOf("mystery") != Other || KindOf("other") != Other {
		t.Fatalf("unknown names must map to Other")
	}
}

const minutesText = "Chairman John Smith led 42. Mary Jones and Eva Lin led 49t in memory of Ann Lee. " +
	"Bo Fox led 128b.\nMORNING SESSION\nAmy Cole led \"Sweet Home\" (Christian Harmony)."

func scanMinutes(t *testing.T) *scanner.Scanner {
	t.Helper()
	c, err := grammar.Minutes()
	if err != nil {
		t.Fatalf("grammar.Minutes: %v", err)
	}
	return scanner.New(c)
}

func TestExtract_EndToEnd(t *testing.T) {
	sc := scanMinutes(t)
	e := New(songSet{"42": true, "49": true, "128": true}, bookMap{"Christian Harmony": "CH"},
		Options{SongTitles: true, Breaks: true})

	res, err := e.Run(sc.Scan(minutesText))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []Record{
		{Leader: "John Smith", Song: "42"},
		{Leader: "Mary Jones", Song: "49"},
		{Leader: "Eva Lin", Song: "49"},
		{Leader: "Bo Fox", Song: "128"},
		{Leader: "MORNING SESSION", Song: BreakSong},
		{Leader: "Amy Cole", Song: "CH Sweet Home"},
	}
	if !reflect.DeepEqual(res.Records, want) {
		t.Fatalf("records:\n got %+v\nwant %+v", res.Records, want)
	}
	if got := res.Offices["Chairman"]; !slices.Equal(got, []string{"John Smith"}) {
		t.Fatalf("offices = %v", res.Offices)
	}
	if got := kinds(res.Diagnostics); !slices.Equal(got, []DiagnosticKind{IgnoredLeader}) {
		t.Fatalf("diagnostics = %+v", res.Diagnostics)
	}
}

func TestExtract_SpaceModesAgree(t *testing.T) {
	sc := scanMinutes(t)
	toks, err := sc.Tokenize(minutesText)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	base := New(songSet{"42": true}, nil, Options{Breaks: true})

	dropped := base.Extract(toks)
	kept := base.WithOptions(Options{Breaks: true, KeepSpace: true}).Extract(toks)

	if !reflect.DeepEqual(dropped.Records, kept.Records) ||
		!reflect.DeepEqual(dropped.Diagnostics, kept.Diagnostics) ||
		!reflect.DeepEqual(dropped.Offices, kept.Offices) {
		t.Fatalf("space modes disagree:\n%+v\n%+v", dropped, kept)
	}

	spaces := 0
	for _, tk := range toks {
		if tk.Name == "space" {
			spaces++
		}
	}
	if spaces == 0 || kept.Tokens != len(toks) || dropped.Tokens != len(toks)-spaces {
		t.Fatalf("token counts: kept=%d dropped=%d total=%d spaces=%d", kept.Tokens, dropped.Tokens, len(toks), spaces)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	sc := scanMinutes(t)
	e := New(songSet{"42": true}, bookMap{}, Options{SongTitles: true, Breaks: true})

	a, errA := e.Run(sc.Scan(minutesText))
	b, errB := e.Run(sc.Scan(minutesText))
	if errA != nil || errB != nil {
		t.Fatalf("Run errors: %v %v", errA, errB)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated passes differ:\n%+v\n%+v", a, b)
	}
}

func TestCount(t *testing.T) {
	got := Count([]Diagnostic{{Kind: MissingSong}, {Kind: MissingSong}, {Kind: IgnoredSong}})
	if got[MissingSong] != 2 || got[IgnoredSong] != 1 || got[MissingLeader] != 0 {
		t.Fatalf("Count = %v", got)
	}
}
