package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type PathsConfig struct {
	EpubDir       string `toml:"epub_dir"`
	CorpusDir     string `toml:"corpus_dir"`
	ProcessedDir  string `toml:"processed_dir"`
	AnnotationDir string `toml:"annotation_dir"`
}

type SegmenterConfig struct {
	Strategy          string `toml:"strategy"` // "sentences" or "windows"
	SentencesPerChunk int    `toml:"sentences_per_chunk"`
	WindowSize        int    `toml:"window_size"`
	WindowOverlap     int    `toml:"window_overlap"`
	MinChunkLen       int    `toml:"min_chunk_len"`
}

type NormalizerConfig struct {
	MinNameLen  int               `toml:"min_name_len"`
	NoiseWords  []string          `toml:"noise_words"`
	Factions    []string          `toml:"factions"`
	GeoSuffixes []string          `toml:"geo_suffixes"`
	KnownLocs   []string          `toml:"known_locations"`
	Titles      []string          `toml:"titles"`
	KnownPeople []string          `toml:"known_people"`
	AliasMap    map[string]string `toml:"aliases"`
}

type LabelerConfig struct {
	SampleSize     int     `toml:"sample_size"`
	RequestsPerSec float64 `toml:"requests_per_sec"`
	MaxRetries     int     `toml:"max_retries"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type Neo4jConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type Config struct {
	Paths      PathsConfig         `toml:"paths"`
	Segmenter  SegmenterConfig     `toml:"segmenter"`
	Normalizer NormalizerConfig    `toml:"normalizer"`
	Labeler    LabelerConfig       `toml:"labeler"`
	LLM        LLMConfig           `toml:"llm"`
	Neo4j      Neo4jConfig         `toml:"neo4j"`
	TargetMap  map[string][]string `toml:"targets"` // book_id -> names the model tends to miss
}

// Default returns the built-in configuration. Every list the normalizer and
// labeler consume has a compiled-in value so the pipeline runs without a
// config file; Load overlays file values on top of these.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			EpubDir:       "data/raw_epubs",
			CorpusDir:     "data/corpus_txt",
			ProcessedDir:  "data/processed_data",
			AnnotationDir: "data/annotations",
		},
		Segmenter: SegmenterConfig{
			Strategy:          "sentences",
			SentencesPerChunk: 7,
			WindowSize:        2000,
			WindowOverlap:     200,
			// 0 = per-strategy default: 30 in sentence mode, 10 in window mode.
			MinChunkLen: 0,
		},
		Normalizer: NormalizerConfig{
			MinNameLen: 3,
			NoiseWords: []string{
				"maester", "wolf", "bush", "ironwood", "albino", "squires", "king",
				"queen", "m'lord", "lord", "lady", "sir", "a king", "the king",
				"sword", "shield", "plate", "blade", "sun", "moon", "day", "night",
				"gate", "inn", "stable", "horse", "dragon", "cell", "dungeon", "way",
			},
			Factions: []string{
				"House", "Bridge Four", "Watch", "Clan", "Order", "Sedai",
				"Kingsguard", "Radiants", "Stark", "Lannister", "Targaryen",
			},
			GeoSuffixes: []string{
				"land", "shire", "ford", "port", "field", "keep", "tower", "city",
				"valley", "mount", "river", "sea", "lake", "rock", "plain",
				"castle", "bridge", "peak",
			},
			KnownLocs: []string{
				"Winterfell", "King's Landing", "Castle Black", "Eyrie", "Riverrun",
				"Pyke", "Highgarden", "Dorne", "Braavos", "Pentos", "Meereen",
				"Qarth", "The Wall", "Shattered Plains", "Kharbranth", "Kholinar",
				"Hearthstone", "Urithiru", "Shadesmar", "Thaylen City", "Bavland",
				"Emond's Field", "Two Rivers", "Baerlon", "Caemlyn", "Tar Valon",
				"Shienar", "Fal Dara", "Shire", "Rivendell", "Moria", "Isengard",
				"Mordor", "Gondor", "Rohan", "Buckkeep", "Six Duchies",
			},
			Titles: []string{
				"Lord", "Lady", "Maester", "Highprince", "Brightlord", "Brightlady",
				"King", "Queen", "Prince", "Princess", "Ser", "Khal", "Septa", "Warden",
			},
			KnownPeople: []string{
				"Kaladin", "Dalinar", "Shallan", "Adolin", "Sansa", "Arya", "Tyrion",
				"Perrin", "Rand", "Mat", "Moiraine", "Egwene", "Ned", "Jon",
			},
			AliasMap: map[string]string{
				"Kal":          "Kaladin",
				"Strider":      "Aragorn",
				"Baggins":      "Frodo",
				"Mithrandir":   "Gandalf",
				"Sméagol":      "Gollum",
				"gollum":       "Gollum",
				"Littlefinger": "Petyr Baelish",
				"Samwise":      "Sam",
				"Peregrin":     "Pippin",
			},
		},
		Labeler: LabelerConfig{
			SampleSize:     2000,
			RequestsPerSec: 2.5,
			// Five attempts gives the 1s, 2s, 4s, 8s backoff ladder.
			MaxRetries: 5,
		},
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash",
		},
		TargetMap: map[string][]string{
			"TheEyeofTheWorld":     {"Perrin", "Min", "Ba'alzamon", "Elyas", "Loial", "Logain"},
			"AGameofThrones":       {"Sansa", "Bran", "Cersei", "Jaime", "Theon", "Varys", "Sandor"},
			"TheWayofKings":        {"Teft", "Rock", "Lopen", "Wit", "Hoid", "Renarin", "Moash"},
			"Assassin'sApprentice": {"The Fool", "Patience", "Nighteyes", "Shrewd"},
			"TheSwordofShannara":   {"Flick", "Hendel", "Stenmin"},
			"FellowshipofTheRing":  {"Theoden", "Galadriel", "Celeborn"},
			"TheTwoTowers":         {"Theoden", "Eowyn", "Faramir"},
			"TheReturnofTheKing":   {"Theoden", "Denethor", "Ioreth"},
		},
	}
}

// Load reads a TOML config file and overlays it on the defaults. Secrets are
// taken from the environment when the file leaves them empty.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = apiKeyFromEnv(cfg.LLM.Provider)
	}
	if v := os.Getenv("NEO4J_URI"); v != "" {
		cfg.Neo4j.URI = v
	}
	if v := os.Getenv("NEO4J_USER"); v != "" {
		cfg.Neo4j.User = v
	}
	if v := os.Getenv("NEO4J_PASSWORD"); v != "" {
		cfg.Neo4j.Password = v
	}

	return cfg, nil
}

func apiKeyFromEnv(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "claude":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}
