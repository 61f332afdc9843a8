package main

// @title TalkPro APIs
// @version 1.0
// @description Interview practice backend: algorithm, system design and workplace sessions.

// @host localhost:9089
// @BasePath /
// @schemes http
import (
	"fmt"
	"os"
	"strings"

	_ "talkpro/docs"
	"talkpro/internal/adapters/output/catalog"
	"talkpro/internal/domain"
	protocol "talkpro/protocal"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	// .env is optional; real environment variables win either way
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("Failed to load .env: %v", err)
	}

	serveCmd.Flags().String("env", "", "config variant to load (config.<env>.yaml)")
	catalogCmd.Flags().String("path", "./data", "directory holding questions, scenarios and personas")
	rootCmd.AddCommand(serveCmd, catalogCmd)
}

var rootCmd = &cobra.Command{
	Use:   "talkpro",
	Short: "Interview practice backend",
	Long:  `TalkPro runs algorithm, system design and workplace practice interviews against a chat LLM.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP, WebSocket and LINE webhook server",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, _ := cmd.Flags().GetString("env")
		if env == "" {
			env = os.Getenv("APP_ENV")
		}
		return protocol.ServeHTTP(env)
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Load the seed catalog and print what it holds",
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("path")
		c := catalog.LoadFileCatalog(path)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "questions (%d): %s\n", len(c.Questions()),
			strings.Join(lo.Map(c.Questions(), func(q domain.Question, _ int) string { return q.ID }), ", "))
		fmt.Fprintf(out, "scenarios (%d): %s\n", len(c.Scenarios()),
			strings.Join(lo.Map(c.Scenarios(), func(s domain.Scenario, _ int) string { return s.ID }), ", "))
		fmt.Fprintf(out, "personas (%d): %s\n", len(c.Personas()),
			strings.Join(lo.Map(c.Personas(), func(p domain.Persona, _ int) string { return p.ID }), ", "))
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Println(err)
		os.Exit(1)
	}
}
