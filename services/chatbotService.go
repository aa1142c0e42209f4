package services

import (
	"fmt"
	"strings"
)

// faqAnswers maps normalized questions to canned answers.
var faqAnswers = map[string]string{
	"what are your timings?":             "We are open from 8 AM to 8 PM, Monday to Saturday. Sundays are closed for routine checkups, but emergency services are available 24/7.",
	"do you have emergency services?":    "Yes, emergency services are available 24/7. You can reach our emergency hotline at 123-456-7890.",
	"where is the hospital located?":     "We are located near ABC Road, opposite XYZ Mall, City Center.",
	"how can i book an appointment?":     "You can book an appointment by calling our reception at 123-456-7890 or through the appointment portal.",
	"do you offer online consultations?": "Yes, we offer online consultations for general medicine and follow-ups. Please call to schedule one.",
	"what insurance do you accept?":      "We accept most major insurance providers. Please contact billing for details.",
	"do you have a pharmacy inside?":     "Yes, we have a 24/7 in-house pharmacy for all prescribed medications.",
	"how can i get my lab reports?":      "Lab reports can be collected at the diagnostics counter or accessed online using your patient ID.",
	"do you have specialists available?": "Yes, we have specialists in cardiology, neurology, pediatrics, orthopedics, dermatology, and more. Please check availability before visiting.",
}

// SymptomAdvice is the triage suggestion for a matched symptom cluster.
type SymptomAdvice struct {
	Disease    string `json:"disease"`
	Department string `json:"department"`
	Doctor     string `json:"doctor"`
}

// symptomClusters pair space-separated symptom keywords with triage advice;
// a message matching at least two keywords of a cluster triggers its advice.
// Order matters: earlier clusters win ties.
var symptomClusters = []struct {
	keywords string
	advice   SymptomAdvice
}{
	{"fever cough sore throat", SymptomAdvice{Disease: "Flu", Department: "General Medicine", Doctor: "Dr. Anjali Sharma"}},
	{"chest pain breathlessness", SymptomAdvice{Disease: "Possible Cardiac Issue", Department: "Cardiology", Doctor: "Dr. Rajiv Menon"}},
	{"headache nausea vomiting", SymptomAdvice{Disease: "Migraine", Department: "Neurology", Doctor: "Dr. Neha Gupta"}},
	{"abdominal pain bloating constipation", SymptomAdvice{Disease: "Irritable Bowel Syndrome (IBS)", Department: "Gastroenterology", Doctor: "Dr. Prakash Iyer"}},
	{"joint pain stiffness swelling", SymptomAdvice{Disease: "Arthritis", Department: "Rheumatology", Doctor: "Dr. Meera Nair"}},
	{"itching rash redness", SymptomAdvice{Disease: "Allergic Dermatitis", Department: "Dermatology", Doctor: "Dr. Rohan Desai"}},
	{"frequent urination burning sensation", SymptomAdvice{Disease: "Urinary Tract Infection (UTI)", Department: "Urology", Doctor: "Dr. Kavita Reddy"}},
	{"blurred vision eye pain headache", SymptomAdvice{Disease: "Glaucoma", Department: "Ophthalmology", Doctor: "Dr. Vivek Sinha"}},
	{"weight loss fatigue night sweats", SymptomAdvice{Disease: "Tuberculosis", Department: "Pulmonology", Doctor: "Dr. Sneha Joshi"}},
	{"numbness tingling weakness", SymptomAdvice{Disease: "Nerve Compression or Neuropathy", Department: "Neurology", Doctor: "Dr. Arvind Kapoor"}},
	{"palpitations dizziness sweating", SymptomAdvice{Disease: "Arrhythmia", Department: "Cardiology", Doctor: "Dr. Divya Narayan"}},
	{"shortness of breath wheezing chest tightness", SymptomAdvice{Disease: "Asthma", Department: "Pulmonology", Doctor: "Dr. Imran Qureshi"}},
	{"sneezing runny nose itchy eyes", SymptomAdvice{Disease: "Allergic Rhinitis", Department: "ENT", Doctor: "Dr. Priya Sengupta"}},
	{"back pain leg pain numbness", SymptomAdvice{Disease: "Sciatica", Department: "Orthopedics", Doctor: "Dr. Suresh Rathi"}},
	{"excessive thirst frequent urination fatigue", SymptomAdvice{Disease: "Diabetes Mellitus", Department: "Endocrinology", Doctor: "Dr. Pooja Verma"}},
}

var greetingWords = []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening"}

// ChatRequest is the inbound chat payload. Name is optional and only
// personalizes the reply.
type ChatRequest struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

type ChatbotService interface {
	Reply(req ChatRequest) string
	MatchSymptoms(message string) *SymptomAdvice
}

type chatbotService struct{}

func NewChatbotService() ChatbotService {
	return &chatbotService{}
}

// Reply answers greetings, known FAQs and symptom descriptions, in that
// order, falling back to a generic help message.
func (s *chatbotService) Reply(req ChatRequest) string {
	message := strings.ToLower(strings.TrimSpace(req.Message))
	name := strings.TrimSpace(req.Name)

	for _, greet := range greetingWords {
		if strings.Contains(message, greet) {
			if name != "" {
				return fmt.Sprintf("Hello %s! How can I assist you with your health questions today?", name)
			}
			return "Hello! How can I assist you with your health questions today?"
		}
	}

	if answer, ok := faqAnswers[message]; ok {
		if name != "" {
			return fmt.Sprintf("%s If you have more questions, %s, feel free to ask!", answer, name)
		}
		return answer
	}

	if advice := s.MatchSymptoms(message); advice != nil {
		reply := fmt.Sprintf("Based on your symptoms, you may have %s. Please consult the %s department (our senior consultant %s).",
			advice.Disease, advice.Department, advice.Doctor)
		if name != "" {
			reply = fmt.Sprintf("%s, %s", name, reply)
		}
		return reply
	}

	return "I can help with hospital timings, appointments, lab reports and symptom guidance. Could you rephrase your question?"
}

// MatchSymptoms scores each cluster by how many of its keywords appear in
// the message and returns the first cluster with at least two hits.
func (s *chatbotService) MatchSymptoms(message string) *SymptomAdvice {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(message)) {
		words[strings.Trim(w, ".,!?")] = true
	}

	for _, cluster := range symptomClusters {
		matches := 0
		for _, keyword := range strings.Fields(cluster.keywords) {
			if words[keyword] {
				matches++
			}
		}
		if matches >= 2 {
			advice := cluster.advice
			return &advice
		}
	}
	return nil
}
