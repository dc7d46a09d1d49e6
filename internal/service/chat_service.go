package service

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"runbuddy/coach-app/internal/domain"
	"runbuddy/coach-app/internal/llm"
	"runbuddy/coach-app/internal/repository"
)

// coachApology is returned when the generation service is unavailable, so the
// chat never surfaces a hard failure to the user.
const coachApology = "Sorry, I'm having trouble responding right now. Please try again in a moment!"

// ChatService runs the coach conversation. The coach persona comes from the
// user's onboarding profile; conversations are not persisted.
type ChatService interface {
	// Reply appends the coach's answer to the given history. Generation
	// failures are masked with a canned apology; only persistence-layer
	// problems (loading the profile) surface as errors.
	Reply(ctx context.Context, userID primitive.ObjectID, history []llm.Message) (llm.Message, error)
	// Welcome returns the seed messages for a fresh conversation.
	Welcome(ctx context.Context, userID primitive.ObjectID) ([]llm.Message, error)
}

type chatService struct {
	userRepo repository.UserRepository
	chat     llm.ChatClient
}

// NewChatService creates a new instance of chatService.
func NewChatService(userRepo repository.UserRepository, chat llm.ChatClient) ChatService {
	return &chatService{userRepo: userRepo, chat: chat}
}

// Reply builds the persona system message, prepends it if the history lacks
// one, and asks the generation service for the coach's next turn.
func (s *chatService) Reply(ctx context.Context, userID primitive.ObjectID, history []llm.Message) (llm.Message, error) {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return llm.Message{}, err
	}

	messages := history
	if len(messages) == 0 || messages[0].Role != llm.RoleSystem {
		messages = append([]llm.Message{personaMessage(profile)}, messages...)
	}

	reply, err := s.chat.Chat(ctx, messages)
	if err != nil {
		log.Printf("WARN: coach chat failed for user %s: %v", userID.Hex(), err)
		return llm.Message{Role: llm.RoleAssistant, Content: coachApology}, nil
	}
	return llm.Message{Role: llm.RoleAssistant, Content: reply}, nil
}

// Welcome seeds a new conversation with the persona and an opening greeting
// from the coach.
func (s *chatService) Welcome(ctx context.Context, userID primitive.ObjectID) ([]llm.Message, error) {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	greeting := fmt.Sprintf(
		"Hey there! I'm %s, your %s running coach. I'm here to help you achieve your goal of %s. "+
			"How's your training going? Feel free to ask me anything about running, your plan, or if you need motivation!",
		profile.CoachName, profile.CoachStyle, profile.Goal,
	)
	return []llm.Message{
		personaMessage(profile),
		{Role: llm.RoleAssistant, Content: greeting},
	}, nil
}

func (s *chatService) profile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Onboarded() {
		return nil, ErrProfileRequired
	}
	return user.Profile, nil
}

func personaMessage(p *domain.Profile) llm.Message {
	content := fmt.Sprintf(
		"You are %s, a %s running coach. The user is a %d-year-old %s runner whose goal is: %s. "+
			"Be encouraging, give specific advice, and maintain your %s personality throughout the conversation.",
		p.CoachName, p.CoachStyle, p.Age, p.Experience, p.Goal, p.CoachStyle,
	)
	return llm.Message{Role: llm.RoleSystem, Content: content}
}
