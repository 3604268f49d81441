package games

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

var (
	// ErrUnknownGame is returned when a game id is not part of the table.
	ErrUnknownGame = errors.New("unknown game")
	// ErrUnknownProject is returned when a project is not valid for a game.
	ErrUnknownProject = errors.New("unknown project")
)

// Project is a master server operator that lists servers for a game.
type Project struct {
	// Name is the project identifier (e.g., "bf2hub").
	Name string `json:"name"`
	// Hostname is the master server host.
	Hostname string `json:"hostname"`
	// Port is the master server list port.
	Port int `json:"port"`
}

// Address returns the master server address in host:port form.
func (p Project) Address() string {
	return net.JoinHostPort(p.Hostname, strconv.Itoa(p.Port))
}

// Game describes a supported title and its master server projects.
type Game struct {
	// ID is the short identifier used on the command line (e.g., "bf2").
	ID string `json:"id"`
	// GameName is the GameSpy game name passed to gslist.
	GameName string `json:"game_name"`
	// GameKey is the GameSpy secret key for the game.
	GameKey string `json:"game_key"`
	// EncType is the master server encryption type.
	EncType string `json:"enc_type"`
	// QueryType is the gslist query type used for status queries.
	QueryType string `json:"query_type"`
	// Projects lists the master server projects in declaration order.
	// The first entry is the default project.
	Projects []Project `json:"projects"`
}

// ResolveProject returns the project to query. An explicit name wins when
// it is valid for the game; an empty name selects the first declared project.
func (g Game) ResolveProject(name string) (Project, error) {
	if len(g.Projects) == 0 {
		return Project{}, fmt.Errorf("%w: game %s has no projects", ErrUnknownProject, g.ID)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return g.Projects[0], nil
	}
	for _, p := range g.Projects {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("%w: %q is not a project of %s (valid: %s)",
		ErrUnknownProject, name, g.ID, strings.Join(g.ProjectNames(), ", "))
}

// ProjectNames returns project names in declaration order.
func (g Game) ProjectNames() []string {
	names := make([]string, 0, len(g.Projects))
	for _, p := range g.Projects {
		names = append(names, p.Name)
	}
	return names
}

// Table maps game ids to their configuration.
type Table struct {
	order []string
	games map[string]Game
}

// NewTable builds a table from the given games, keeping their order.
// Later duplicates of the same id replace earlier ones.
func NewTable(gs ...Game) Table {
	t := Table{games: make(map[string]Game, len(gs))}
	for _, g := range gs {
		id := strings.ToLower(g.ID)
		if _, exists := t.games[id]; !exists {
			t.order = append(t.order, id)
		}
		g.Projects = append([]Project(nil), g.Projects...)
		t.games[id] = g
	}
	return t
}

// Lookup returns the game with the given id (case-insensitive).
func (t Table) Lookup(id string) (Game, bool) {
	g, ok := t.games[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Game{}, false
	}
	g.Projects = append([]Project(nil), g.Projects...)
	return g, true
}

// Get is like Lookup but returns ErrUnknownGame for missing ids.
func (t Table) Get(id string) (Game, error) {
	g, ok := t.Lookup(id)
	if !ok {
		return Game{}, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownGame, id, strings.Join(t.IDs(), ", "))
	}
	return g, nil
}

// IDs returns all game ids in declaration order.
func (t Table) IDs() []string {
	return append([]string(nil), t.order...)
}

// Games returns all games in declaration order.
func (t Table) Games() []Game {
	out := make([]Game, 0, len(t.order))
	for _, id := range t.order {
		g, _ := t.Lookup(id)
		out = append(out, g)
	}
	return out
}

// Default returns the built-in table of supported Battlefield titles.
func Default() Table {
	return NewTable(
		Game{
			ID:        "bf1942",
			GameName:  "bfield1942",
			GameKey:   "HpWx9z",
			EncType:   "2",
			QueryType: "0",
			Projects: []Project{
				{Name: "bf1942.sk", Hostname: "master.bf1942.sk", Port: 28900},
			},
		},
		Game{
			ID:        "bfvietnam",
			GameName:  "bfvietnam",
			GameKey:   "h2P9dJ",
			EncType:   "2",
			QueryType: "0",
			Projects: []Project{
				{Name: "qtracker", Hostname: "master2.qtracker.com", Port: 28900},
			},
		},
		Game{
			ID:        "bf2",
			GameName:  "battlefield2",
			GameKey:   "hW6m9a",
			EncType:   "-1",
			QueryType: "8",
			Projects: []Project{
				{Name: "bf2hub", Hostname: "servers.bf2hub.com", Port: 28911},
				{Name: "playbf2", Hostname: "battlefield2.ms.playbf2.ru", Port: 28910},
			},
		},
		Game{
			ID:        "bf2142",
			GameName:  "stella",
			GameKey:   "M8o1Qw",
			EncType:   "-1",
			QueryType: "8",
			Projects: []Project{
				{Name: "play2142", Hostname: "stella.ms5.openspy.net", Port: 28910},
			},
		},
	)
}
