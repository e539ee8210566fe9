package main

import (
	"fmt"
	"os"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Tokenizer is an interface for different tokenizer implementations.
type Tokenizer interface {
	CountTokens(text string) int
	Close()
}

// TokenizerConfig selects and parameterizes a tokenizer.
type TokenizerConfig struct {
	Type  string // tiktoken or huggingface
	Model string
	File  string // local tokenizer.json, huggingface only
}

// --- Tiktoken Wrapper ---

type TiktokenWrapper struct {
	ttk *tiktoken.Tiktoken
}

func (w *TiktokenWrapper) CountTokens(text string) int {
	if w.ttk == nil {
		return 0
	}
	return len(w.ttk.EncodeOrdinary(text))
}

func (w *TiktokenWrapper) Close() {}

// --- HuggingFace (sugarme) Wrapper ---

type HFTokenizerWrapper struct {
	htk *hf.Tokenizer
}

func (w *HFTokenizerWrapper) CountTokens(text string) int {
	if w.htk == nil {
		return 0
	}
	en, err := w.htk.EncodeSingle(text)
	if err != nil {
		logger.Sugar().Warnf("HF tokenizer failed to encode text: %v", err)
		return 0
	}
	return len(en.Tokens)
}

func (w *HFTokenizerWrapper) Close() {}

const defaultTiktokenModel = "gpt-4o"
const defaultHFModel = "gpt2"

// getTokenizer returns a tokenizer instance for cfg.
func getTokenizer(cfg TokenizerConfig) (Tokenizer, error) {
	logger.Sugar().Debugf("Initializing tokenizer (Type: %s, Model: %s, File: %s)", cfg.Type, cfg.Model, cfg.File)

	switch strings.ToLower(cfg.Type) {
	case "", "tiktoken":
		return loadTiktoken(cfg.Model)
	case "huggingface":
		return loadHuggingFace(cfg.Model, cfg.File)
	default:
		return nil, fmt.Errorf("unsupported tokenizer type: %s. Use 'tiktoken' or 'huggingface'", cfg.Type)
	}
}

func loadTiktoken(model string) (Tokenizer, error) {
	if model == "" {
		model = defaultTiktokenModel
	}

	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		logger.Sugar().Warnf("Tiktoken model '%s' not found, falling back to '%s': %v", model, defaultTiktokenModel, err)
		tke, err = tiktoken.EncodingForModel(defaultTiktokenModel)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for default model '%s': %w", defaultTiktokenModel, err)
		}
	}
	return &TiktokenWrapper{ttk: tke}, nil
}

func loadHuggingFace(model, file string) (Tokenizer, error) {
	if file != "" {
		ttk, err := pretrained.FromFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load tokenizer from file %s: %w", file, err)
		}
		return &HFTokenizerWrapper{htk: ttk}, nil
	}

	if model == "" {
		model = defaultHFModel
	}
	// CachedPath downloads tokenizer.json from the Hub on first use.
	configFilePath, err := hf.CachedPath(model, "tokenizer.json")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache path for model %s: %w", model, err)
	}
	ttk, err := pretrained.FromFile(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pretrained tokenizer for model %s (from %s): %w", model, configFilePath, err)
	}
	return &HFTokenizerWrapper{htk: ttk}, nil
}

// summarizeOutput counts the blocks, bytes and (when tk is non-nil) tokens of the output file.
func summarizeOutput(result Result, tk Tokenizer) (Summary, error) {
	content, err := os.ReadFile(result.OutputPath)
	if err != nil {
		return Summary{}, fmt.Errorf("error reading output file %s: %w", result.OutputPath, err)
	}
	summary := Summary{
		TotalFiles: result.Count,
		TotalSize:  int64(len(content)),
	}
	if tk != nil {
		summary.TotalTokens = tk.CountTokens(string(content))
	}
	return summary, nil
}
