package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/proseward/proseward/pkg/app/completion"
	"github.com/proseward/proseward/pkg/app/processor"
	"github.com/proseward/proseward/pkg/app/retrieval"
	"github.com/proseward/proseward/pkg/config"
	"github.com/proseward/proseward/pkg/domain/knowledge"
	embeddingOpenAI "github.com/proseward/proseward/pkg/infra/embedding/openai"
	"github.com/proseward/proseward/pkg/infra/providers"
	providerOpenAI "github.com/proseward/proseward/pkg/infra/providers/openai"
	"github.com/proseward/proseward/pkg/infra/transcript"
	"github.com/proseward/proseward/pkg/infra/transform/ollama"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

const banner = `This is an English text improvement tool.

It routes your text through one of several processing strategies, grounded on
a knowledge base of English language rules.

● write_properly: enhances both grammar and style of the input message.
● write_the_same_grammar_fixed: corrects only the grammatical errors.
● summarize: provides a concise summary of the input message.
● write_standard_english: grammar pass first, then a style pass over both texts.
`

const menu = `
---------------------------------------------------------------------------------------------
Enter:

1 for write_properly: Enhances both grammar and style of the input message.
2 for write_the_same_grammar_fixed: Corrects only the grammatical errors in the input message.
3 to summarize: Provides a concise summary of the input message.
4 for write_standard_english: Corrects grammar first, then improves the result.

or anything else to quit: `

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	procs, err := buildProcessors(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize processors")
	}

	fmt.Print(banner)
	runLoop(ctx, procs, logger)
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

func buildProcessors(ctx context.Context, cfg config.Config, logger *logrus.Logger) (map[string]processor.Processor, error) {
	logger.Info("loading models")

	encoder, err := embeddingOpenAI.NewEmbeddingService(&fasthttp.Client{}, embeddingOpenAI.Config{
		APIKey:    cfg.Embedding.APIKey,
		Model:     cfg.Embedding.Model,
		Dimension: cfg.Embedding.Dimension,
	}, logger)
	if err != nil {
		return nil, err
	}

	retriever, err := retrieval.NewRetriever(ctx, encoder, knowledge.DefaultBase(), logger)
	if err != nil {
		return nil, err
	}

	client, err := providerOpenAI.NewClient(providers.Config{
		Model:        cfg.Provider.Model,
		Organization: cfg.Provider.Organization,
		APIKey:       cfg.Provider.APIKey,
		MaxTokens:    cfg.Provider.MaxTokens,
		Temperature:  cfg.Provider.Temperature,
	})
	if err != nil {
		return nil, err
	}

	sink := transcript.NewFileSink(cfg.Transcripts.Dir, logger)
	newCaller := func(name string) *completion.Caller {
		return completion.NewCaller(name, client, logger,
			completion.WithAttempts(cfg.Provider.Retries),
			completion.WithBackoff(time.Duration(cfg.Provider.BackoffSeconds)*time.Second),
			completion.WithAttemptTimeout(time.Duration(cfg.Provider.AttemptTimeoutSeconds)*time.Second),
			completion.WithSink(sink),
		)
	}

	grammarFixer := processor.NewGrammarFixer(
		ollama.NewClient(cfg.Transform.BaseURL, cfg.Transform.GrammarModel, logger))
	summarizer := processor.NewSummarizer(
		ollama.NewClient(cfg.Transform.BaseURL, cfg.Transform.SummaryModel, logger))

	topK := processor.WithTopK(cfg.Retrieval.TopK)
	styleChecker := processor.NewStyleChecker(retriever, newCaller("style-checker"), topK)
	grammarChecker := processor.NewGrammarChecker(retriever, newCaller("grammar-checker"), topK)
	standardEnglish := processor.NewStandardEnglishChecker(grammarChecker, newCaller("standard-english"))

	return map[string]processor.Processor{
		"1": styleChecker,
		"2": grammarFixer,
		"3": summarizer,
		"4": standardEnglish,
	}, nil
}

func runLoop(ctx context.Context, procs map[string]processor.Processor, logger *logrus.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print(menu)
		option, ok := readLine(scanner)
		if !ok {
			return
		}

		proc, found := procs[strings.TrimSpace(option)]
		if !found {
			return
		}

		fmt.Print("Enter text: ")
		text, ok := readLine(scanner)
		if !ok {
			return
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		requestID := uuid.NewString()
		start := time.Now()
		result, err := proc.Process(ctx, text)
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"processor":  proc.Name(),
				"request_id": requestID,
			}).Error("processing failed")
			fmt.Println("\nProcessing failed, please try again.")
			continue
		}

		logger.WithFields(logrus.Fields{
			"processor":  proc.Name(),
			"request_id": requestID,
			"elapsed":    time.Since(start).String(),
		}).Debug("processing finished")

		fmt.Printf("\nResult: %s\n", result)
	}
}

func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return scanner.Text(), true
}
