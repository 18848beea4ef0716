package types

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Chunk struct {
	ID        uuid.UUID
	DocID     uuid.UUID
	Position  int
	Content   string
	Embedding []float32
	Distance  float64
}

type Document struct {
	ID         uuid.UUID
	Title      string
	Chunks     []Chunk
	Source     string // pdf, confluence, etc.
	SourcePath string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int
}

// Config collects every tunable of the service in one place, populated from
// the environment. Missing or invalid values fall back to the defaults.
type Config struct {
	ServerAddr string

	// Questions containing any of these words (case-insensitive) are answered
	// from the document corpus, everything else goes straight to the LLM.
	DocKeywords []string

	Fanout          int // paraphrased query variants per question
	KPerQuery       int // chunks requested from the index per variant
	TopK            int // chunks kept after reranking
	HistoryCap      int // retained conversation turns (user and bot counted separately)
	MaxContextChars int // character budget for the assembled context

	ChunkSize    int // words per chunk
	ChunkOverlap int // overlapping words between consecutive chunks

	// Header/footer crop margins in points applied before conversion.
	// Zero disables cropping.
	CropTop    float64
	CropBottom float64

	DocPath    string // document re-ingested by POST /api/update
	SourceDir  string
	ArchiveDir string
	BadDir     string

	LLMTimeout time.Duration
}

func LoadConfig() Config {
	return Config{
		ServerAddr:      os.Getenv("SERVER_ADDR"),
		DocKeywords:     envList("DOC_KEYWORDS", []string{"BOI", "report", "information", "procedure", "file"}),
		Fanout:          envInt("QUERY_FANOUT", 5),
		KPerQuery:       envInt("K_PER_QUERY", 15),
		TopK:            envInt("TOP_K", 3),
		HistoryCap:      envInt("HISTORY_CAP", 10),
		MaxContextChars: envInt("MAX_CONTEXT_LENGTH", 20000),
		ChunkSize:       envInt("CHUNK_SIZE", 500),
		ChunkOverlap:    envInt("CHUNK_OVERLAP", 50),
		CropTop:         envFloat("PDF_CROP_TOP", 0),
		CropBottom:      envFloat("PDF_CROP_BOTTOM", 0),
		DocPath:         os.Getenv("DOC_PATH"),
		SourceDir:       os.Getenv("LOADER_SOURCE_DIR"),
		ArchiveDir:      os.Getenv("LOADER_ARCHIVE_DIR"),
		BadDir:          os.Getenv("LOADER_BAD_DIR"),
		LLMTimeout:      envDuration("LLM_TIMEOUT", 120*time.Second),
	}
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func envFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func envList(key string, def []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// DoclingResponse is the converter service payload for a processed document.
type DoclingResponse struct {
	Document struct {
		MdContent string `json:"md_content"`
	} `json:"document"`
}
