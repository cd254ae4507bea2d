package alias_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/goalguessr/internal/domain/alias"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTable(t *testing.T) {
	Convey("Given a table built from raw entries", t, func() {
		table := alias.NewTable(map[string][]string{
			"Manchester United": {"Man Utd", "MUFC", "manchester united", ""},
			"Atlético Madrid":   {"Atleti"},
			"":                  {"ignored"},
		})

		Convey("Then keys and aliases are normalized", func() {
			So(table.Len(), ShouldEqual, 2)
			So(table.Aliases("manchester united"), ShouldResemble, []string{"man utd", "mufc"})
			So(table.IsAlias("atletico madrid", "atleti"), ShouldBeTrue)
		})

		Convey("Then unknown canonicals have no aliases", func() {
			So(table.Aliases("chelsea"), ShouldBeEmpty)
			So(table.IsAlias("chelsea", "blues"), ShouldBeFalse)
		})
	})
}

func TestCanonical(t *testing.T) {
	Convey("Given the built-in player table", t, func() {
		players := alias.Players()

		Convey("When looking up a canonical name", func() {
			c, ok := players.Canonical("lionel messi")
			So(ok, ShouldBeTrue)
			So(c, ShouldEqual, "lionel messi")
		})

		Convey("When looking up an unambiguous alias", func() {
			c, ok := players.Canonical("zizou")
			So(ok, ShouldBeTrue)
			So(c, ShouldEqual, "zinedine zidane")
		})

		Convey("When looking up an alias shared by two canonicals", func() {
			_, ok := players.Canonical("ronaldo")
			So(ok, ShouldBeFalse)
		})

		Convey("When looking up an unknown name", func() {
			_, ok := players.Canonical("nobody at all")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestResolve(t *testing.T) {
	Convey("Given the built-in team table", t, func() {
		teams := alias.Teams()

		Convey("Then an exact match resolves", func() {
			So(teams.Resolve("arsenal", "arsenal"), ShouldBeTrue)
		})

		Convey("Then an alias of the correct answer resolves", func() {
			So(teams.Resolve("man utd", "manchester united"), ShouldBeTrue)
			So(teams.Resolve("psg", "paris saint germain"), ShouldBeTrue)
		})

		Convey("Then a canonical guess resolves against a stored alias", func() {
			So(teams.Resolve("manchester united", "man utd"), ShouldBeTrue)
		})

		Convey("Then two aliases of the same canonical do not resolve", func() {
			So(teams.Resolve("mufc", "man utd"), ShouldBeFalse)
			So(teams.Resolve("pool", "reds"), ShouldBeFalse)
			So(teams.Resolve("man u", "red devils"), ShouldBeFalse)
		})

		Convey("Then unrelated teams do not resolve", func() {
			So(teams.Resolve("arsenal", "chelsea"), ShouldBeFalse)
			So(teams.Resolve("gunners", "chelsea"), ShouldBeFalse)
		})

		Convey("Then empty strings never resolve", func() {
			So(teams.Resolve("", ""), ShouldBeFalse)
			So(teams.Resolve("", "arsenal"), ShouldBeFalse)
		})
	})

	Convey("Given the built-in player table", t, func() {
		players := alias.Players()

		Convey("Then the shared alias resolves against either owner", func() {
			So(players.Resolve("ronaldo", "cristiano ronaldo"), ShouldBeTrue)
			So(players.Resolve("ronaldo", "ronaldo nazario"), ShouldBeTrue)
		})

		Convey("Then aliases of different players do not resolve", func() {
			So(players.Resolve("cr7", "r9"), ShouldBeFalse)
		})
	})
}

func TestMerge(t *testing.T) {
	Convey("Given a base table", t, func() {
		base := alias.NewTable(map[string][]string{"wolverhampton wanderers": {"wolves"}})

		Convey("When merging extra entries", func() {
			merged := base.Merge(map[string][]string{
				"Wolverhampton Wanderers": {"WWFC"},
				"Leeds United":            {"Leeds"},
			})

			Convey("Then the result holds the union", func() {
				So(merged.Len(), ShouldEqual, 2)
				So(merged.Aliases("wolverhampton wanderers"), ShouldResemble, []string{"wolves", "wwfc"})
				So(merged.IsAlias("leeds united", "leeds"), ShouldBeTrue)
			})

			Convey("Then the base table is unchanged", func() {
				So(base.Len(), ShouldEqual, 1)
				So(base.Aliases("wolverhampton wanderers"), ShouldResemble, []string{"wolves"})
			})
		})
	})
}

func TestTables(t *testing.T) {
	Convey("Given no alias file", t, func() {
		teams, players, err := alias.Tables("")
		So(err, ShouldBeNil)
		So(teams.Len(), ShouldEqual, alias.Teams().Len())
		So(players.Len(), ShouldEqual, alias.Players().Len())
	})

	Convey("Given an alias file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "aliases.yaml")
		content := `
teams:
  1. FC Köln:
    - effzeh
    - koln
players:
  kylian mbappe:
    - mbappe
    - donatello
`
		So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)

		teams, players, err := alias.Tables(path)

		Convey("Then the file entries extend the built-in tables", func() {
			So(err, ShouldBeNil)
			So(teams.IsAlias("1 fc koln", "effzeh"), ShouldBeTrue)
			So(teams.IsAlias("arsenal", "gunners"), ShouldBeTrue)
			So(players.Resolve("donatello", "kylian mbappe"), ShouldBeTrue)
		})
	})

	Convey("Given a missing alias file", t, func() {
		_, _, err := alias.Tables(filepath.Join(t.TempDir(), "missing.yaml"))
		So(err, ShouldNotBeNil)
		So(errors.Is(err, alias.ErrLoadFile), ShouldBeTrue)
	})
}
