package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"portfolio-chat/internal/config"
	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/llm"
	"portfolio-chat/internal/repository"
	"portfolio-chat/internal/service"
)

// cli_chat conversa con el asistente del portfolio desde la terminal, sin servidor HTTP.
func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	repo, err := repository.NewJSONContentRepository(cfg.ProjectsPath, cfg.ExperiencePath)
	if err != nil {
		log.Fatalf("cargar contenido: %v", err)
	}
	persona := domain.Persona{
		Name:         cfg.OwnerName,
		Handle:       cfg.OwnerHandle,
		Role:         cfg.OwnerRole,
		Skills:       cfg.OwnerSkills,
		ContactEmail: cfg.ContactEmail,
	}
	prompt, err := service.NewContentService(repo, cfg.FeaturedProjects, cfg.MCPProjects).PromptContext(ctx, persona)
	if err != nil {
		log.Fatalf("armar prompt: %v", err)
	}

	client := llm.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, &http.Client{}, logger)
	session := service.NewConversationSession(prompt, client, cfg.CompletionTimeout, logger)

	printed := 0
	printed = printNew(session.Messages(), printed, persona)
	fmt.Println("(escribi 'salir' para terminar)")

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		text := strings.TrimSpace(line)
		switch strings.ToLower(text) {
		case "salir", "exit":
			return
		case "":
			continue
		}

		done, ok := session.Submit(text)
		if !ok {
			continue
		}
		// El visitante ya ve su propio mensaje en la terminal.
		printed++
		fmt.Println("...")
		<-done
		printed = printNew(session.Messages(), printed, persona)
	}
}

func printNew(msgs []domain.Message, from int, persona domain.Persona) int {
	for _, m := range msgs[from:] {
		label := "Visitante"
		if m.Role == domain.RoleAssistant {
			label = persona.FirstName() + " AI"
		}
		fmt.Printf("%s: %s\n", label, m.Text)
	}
	return len(msgs)
}
