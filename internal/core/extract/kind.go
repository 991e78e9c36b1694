package extract

// Kind is the closed set of token kinds the minutes grammar emits
type Kind uint8

// Token kinds; Other covers names a custom grammar may add
const (
	Other Kind = iota
	Paragraph
	Space
	Session
	IgnoreSong
	Song
	Role
	LeaderList
	Date
	IgnoreLeader
	Word
	Sentence
	Anything
)

var kindNames = [...]string{
	Other:        "other",
	Paragraph:    "paragraph",
	Space:        "space",
	Session:      "session",
	IgnoreSong:   "ignore_song",
	Song:         "song",
	Role:         "role",
	LeaderList:   "leader_list",
	Date:         "date",
	IgnoreLeader: "ignore_leader",
	Word:         "word",
	Sentence:     "sentence",
	Anything:     "anything",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, n := range kindNames {
		m[n] = Kind(k)
	}
	delete(m, "other")
	return m
}()

// KindOf maps a token name to its kind
func KindOf(name string) Kind {
	if k, ok := kindByName[name]; ok {
		return k
	}
	return Other
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "other"
}
