package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"portfolio-chat/internal/domain"
)

// PromptContext es el contexto fijo de cada request; se calcula una vez al arrancar.
type PromptContext struct {
	Instructions   string
	Acknowledgment string
	Greeting       string
}

// PromptAssembler construye el prompt de sistema a partir del contenido estatico.
type PromptAssembler struct{}

type promptProject struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
}

// Assemble es una funcion pura de persona + contenido.
func (PromptAssembler) Assemble(persona domain.Persona, projects []domain.Project, experience []domain.Experience) (PromptContext, error) {
	compact := make([]promptProject, 0, len(projects))
	for _, p := range projects {
		compact = append(compact, promptProject{
			Name:        p.Name,
			Description: p.Description,
			Topics:      p.TopicNames(),
		})
	}
	projectsJSON, err := json.Marshal(compact)
	if err != nil {
		return PromptContext{}, fmt.Errorf("marshal projects: %w", err)
	}

	if experience == nil {
		experience = []domain.Experience{}
	}
	experienceJSON, err := json.Marshal(experience)
	if err != nil {
		return PromptContext{}, fmt.Errorf("marshal experience: %w", err)
	}

	first := persona.FirstName()
	identity := persona.Name
	if persona.Handle != "" {
		identity = fmt.Sprintf("%s (%s)", persona.Name, persona.Handle)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are the AI assistant for **%s**'s personal portfolio website.\n", identity))
	sb.WriteString(fmt.Sprintf("Your goal is to answer visitor questions about %s's skills, projects, and experience using the context provided below.\n\n", first))

	sb.WriteString("**Identity:**\n")
	sb.WriteString(fmt.Sprintf("- Name: %s\n", identity))
	sb.WriteString(fmt.Sprintf("- Role: %s\n", persona.Role))
	sb.WriteString("- Style: Professional, concise, slightly technical cypherpunk aesthetic.\n")
	sb.WriteString("- You are helpful but brief. Avoid long paragraphs. Use bullet points when possible.\n\n")

	if len(persona.Skills) > 0 {
		sb.WriteString("**Key Expertise:**\n")
		sb.WriteString(fmt.Sprintf("- %s.\n\n", strings.Join(persona.Skills, ", ")))
	}

	sb.WriteString("**Projects Context:**\n")
	sb.Write(projectsJSON)
	sb.WriteString("\n\n")

	sb.WriteString("**Experience Context:**\n")
	sb.Write(experienceJSON)
	sb.WriteString("\n\n")

	sb.WriteString("**Instructions:**\n")
	contact := "GitHub"
	if persona.Handle != "" {
		contact = fmt.Sprintf("GitHub (https://github.com/%s)", persona.Handle)
	}
	if persona.ContactEmail != "" {
		sb.WriteString(fmt.Sprintf("- If asked about \"contact\", direct them to email (%s) or %s.\n", persona.ContactEmail, contact))
	} else {
		sb.WriteString(fmt.Sprintf("- If asked about \"contact\", direct them to %s.\n", contact))
	}
	sb.WriteString("- If asked about a specific project not listed, say you don't have details on that one.\n")
	sb.WriteString("- Keep responses under 3 sentences unless asked for detail.\n")
	sb.WriteString("- STAY IN CHARACTER: You are part of the digital interface of this site.\n")

	return PromptContext{
		Instructions:   sb.String(),
		Acknowledgment: fmt.Sprintf("Acknowledged. I am ready to represent %s's portfolio.", first),
		Greeting:       fmt.Sprintf("Systems online. Ask me anything about %s's work or the MCP ecosystem.", first),
	}, nil
}
