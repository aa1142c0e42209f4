package services

import (
	"strings"
	"testing"
)

func TestChatbotGreeting(t *testing.T) {
	svc := NewChatbotService()

	reply := svc.Reply(ChatRequest{Message: "hello"})
	if !strings.Contains(reply, "How can I assist") {
		t.Errorf("unexpected greeting reply: %q", reply)
	}

	reply = svc.Reply(ChatRequest{Message: "hi there", Name: "Ravi"})
	if !strings.Contains(reply, "Ravi") {
		t.Errorf("personalized greeting missing name: %q", reply)
	}
}

func TestChatbotFAQ(t *testing.T) {
	svc := NewChatbotService()

	reply := svc.Reply(ChatRequest{Message: "What are your timings?"})
	if !strings.Contains(reply, "8 AM to 8 PM") {
		t.Errorf("FAQ answer not returned: %q", reply)
	}
}

func TestChatbotSymptomMatch(t *testing.T) {
	svc := NewChatbotService()

	cases := []struct {
		message string
		disease string
		dept    string
	}{
		{"I have a fever and a bad cough", "Flu", "General Medicine"},
		{"chest pain and breathlessness since morning", "Possible Cardiac Issue", "Cardiology"},
		{"constant sneezing, runny nose", "Allergic Rhinitis", "ENT"},
	}
	for _, tc := range cases {
		advice := svc.MatchSymptoms(tc.message)
		if advice == nil {
			t.Errorf("MatchSymptoms(%q) = nil", tc.message)
			continue
		}
		if advice.Disease != tc.disease || advice.Department != tc.dept {
			t.Errorf("MatchSymptoms(%q) = %+v, want %s/%s", tc.message, advice, tc.disease, tc.dept)
		}
	}
}

func TestChatbotSingleKeywordNoMatch(t *testing.T) {
	svc := NewChatbotService()
	if advice := svc.MatchSymptoms("I have a headache"); advice != nil {
		t.Errorf("single keyword should not match, got %+v", advice)
	}
}

func TestChatbotFallback(t *testing.T) {
	svc := NewChatbotService()
	reply := svc.Reply(ChatRequest{Message: "what is the meaning of life"})
	if !strings.Contains(reply, "rephrase") {
		t.Errorf("expected fallback reply, got %q", reply)
	}
}
