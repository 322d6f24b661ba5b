package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/saturnines/kvizclient/pkg/client"
	"github.com/saturnines/kvizclient/pkg/config"
	"github.com/saturnines/kvizclient/pkg/transport/graphql"
)

type quizList struct {
	Quizzes []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"quizzes"`
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := config.LoadDotEnv(); err != nil {
		logger.Info().Err(err).Msg(".env file not loaded")
	}

	// A yaml path on the command line wins over API_* variables
	loader := config.DefaultLoader()
	var (
		cfg *config.Client
		err error
	)
	if len(os.Args) > 1 {
		cfg, err = loader.Load(os.Args[1])
	} else {
		cfg, err = loader.FromEnv()
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load client config")
	}

	clients := client.Build(*cfg, client.WithLogger(logger))
	defer clients.Close()
	ctx := context.Background()

	resp, err := clients.REST.Get(ctx, "/quizzes", nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("GET /quizzes failed")
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	fmt.Printf("GET /quizzes -> %s\n%s\n", resp.Status, body)

	res, err := graphql.Fetch[quizList](ctx, clients.Query, graphql.Query{
		Document: `{ quizzes { id title } }`,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("quizzes query failed")
	}
	for _, q := range res.Data.Quizzes {
		fmt.Printf("%s\t%s\n", q.ID, q.Title)
	}
}
