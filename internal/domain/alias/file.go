package alias

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// keyDelim never occurs in a team or player name; canonical names such as
// "1. fc koln" must not be split into nested keys.
const keyDelim = "|"

// FileEntries is the shape of an alias YAML file:
//
//	teams:
//	  wolverhampton wanderers: [wolves]
//	players:
//	  kylian mbappe: [mbappe, donatello]
type FileEntries struct {
	Teams   map[string][]string `koanf:"teams"`
	Players map[string][]string `koanf:"players"`
}

// LoadFile reads extra aliases from a YAML file.
func LoadFile(path string) (FileEntries, error) {
	k := koanf.New(keyDelim)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return FileEntries{}, fmt.Errorf("%w: %s: %w", ErrLoadFile, path, err)
	}
	var fe FileEntries
	if err := k.UnmarshalWithConf("", &fe, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return FileEntries{}, fmt.Errorf("%w: %s: %w", ErrLoadFile, path, err)
	}
	return fe, nil
}

// Tables returns the built-in team and player tables extended with the
// aliases in path. An empty path yields the built-in tables.
func Tables(path string) (teams, players *Table, err error) {
	teams, players = Teams(), Players()
	if path == "" {
		return teams, players, nil
	}
	fe, err := LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return teams.Merge(fe.Teams), players.Merge(fe.Players), nil
}
