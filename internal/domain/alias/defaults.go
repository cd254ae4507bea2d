package alias

// teamEntries are the built-in team nicknames and abbreviations.
var teamEntries = map[string][]string{
	"manchester united":   {"man utd", "man u", "manu", "mufc", "red devils", "united"},
	"manchester city":     {"man city", "city", "mcfc", "cityzens"},
	"tottenham hotspur":   {"tottenham", "spurs", "thfc"},
	"arsenal":             {"gunners", "afc"},
	"liverpool":           {"lfc", "reds", "pool"},
	"chelsea":             {"cfc", "blues"},
	"real madrid":         {"real", "rmcf", "los blancos"},
	"barcelona":           {"barca", "fcb", "blaugrana"},
	"bayern munich":       {"bayern", "bayern munchen", "fcb munich"},
	"paris saint germain": {"psg", "paris", "paris sg"},
	"juventus":            {"juve", "jfc", "old lady"},
	"inter milan":         {"inter", "internazionale"},
	"ac milan":            {"milan", "rossoneri"},
	"borussia dortmund":   {"dortmund", "bvb"},
	"atletico madrid":     {"atletico", "atleti"},

	// National teams
	"united states": {"usa", "us", "usmnt"},
	"england":       {"three lions"},
	"germany":       {"deutschland", "die mannschaft"},
	"brazil":        {"brasil", "selecao"},
	"argentina":     {"albiceleste"},
	"netherlands":   {"holland", "dutch", "oranje"},
	"france":        {"les bleus"},
}

// playerEntries are the built-in player nicknames. "ronaldo" is listed
// under two canonicals on purpose; Canonical refuses to pick one.
var playerEntries = map[string][]string{
	"cristiano ronaldo":    {"ronaldo", "cr7", "cristiano"},
	"lionel messi":         {"messi", "leo messi", "la pulga"},
	"diego maradona":       {"maradona", "el pibe de oro"},
	"pele":                 {"edson arantes", "o rei"},
	"thierry henry":        {"henry", "titi"},
	"zinedine zidane":      {"zidane", "zizou"},
	"ronaldo nazario":      {"ronaldo", "r9", "ronaldo brazil", "ronaldo fenomeno"},
	"ole gunnar solskjaer": {"solskjaer", "ole"},
	"steven gerrard":       {"gerrard", "stevie g"},
	"david beckham":        {"beckham", "becks"},
	"wayne rooney":         {"rooney", "wazza"},
	"frank lampard":        {"lampard", "lamps"},
	"alan shearer":         {"shearer"},
	"gary lineker":         {"lineker"},
	"michael owen":         {"owen"},
	"paul gascoigne":       {"gazza", "gascoigne"},
}

// Teams returns a table holding the built-in team aliases.
func Teams() *Table {
	return NewTable(teamEntries)
}

// Players returns a table holding the built-in player aliases.
func Players() *Table {
	return NewTable(playerEntries)
}
