package services

import (
	"slices"
	"sort"
	"strings"

	"github.com/AnshRaj112/serenify-wellness/internal/models"
)

var resources = []models.Resource{
	{ID: "1", Title: "Understanding Anxiety: Causes, Symptoms, and Treatments", Description: "A comprehensive guide to understanding anxiety disorders, their causes, common symptoms, and evidence-based treatment options.", Type: "article", Tags: []string{"anxiety", "mental health", "education"}, URL: "https://www.nimh.nih.gov/health/topics/anxiety-disorders/index.shtml"},
	{ID: "2", Title: "Mindfulness Meditation for Beginners", Description: "Learn the basics of mindfulness meditation with this step-by-step guide for beginners looking to reduce stress and increase awareness.", Type: "article", Tags: []string{"meditation", "mindfulness", "stress", "beginners"}, URL: "https://www.mindful.org/meditation/mindfulness-getting-started/"},
	{ID: "3", Title: "Cognitive Behavioral Therapy Techniques", Description: "An introduction to common CBT techniques that you can practice at home to challenge negative thought patterns.", Type: "pdf", Tags: []string{"cbt", "therapy", "techniques", "self-help"}, URL: "https://www.div12.org/wp-content/uploads/2015/06/Cognitive-Behavioral-Therapy-for-Depression.pdf"},
	{ID: "4", Title: "Guided Sleep Meditation for Insomnia", Description: "A calming guided meditation designed to help those struggling with insomnia and sleep difficulties.", Type: "video", Tags: []string{"sleep", "meditation", "insomnia", "relaxation"}, URL: "https://www.youtube.com/watch?v=aEqlQvczMJQ"},
	{ID: "5", Title: "Managing Depression: Self-Care Strategies", Description: "Evidence-based self-care strategies to help manage symptoms of depression and improve mood.", Type: "article", Tags: []string{"depression", "self-care", "mental health"}, URL: "https://www.helpguide.org/articles/depression/coping-with-depression.htm"},
	{ID: "6", Title: "Stress Management Workbook", Description: "A practical workbook with exercises to identify stressors and develop personalized stress management techniques.", Type: "pdf", Tags: []string{"stress", "workbook", "exercises", "self-help"}, URL: "https://www.va.gov/WHOLEHEALTH/veteran-handouts/docs/StressMgmt_FullManual_508_07-25-2019.pdf"},
	{ID: "7", Title: "Understanding the Science of Emotions", Description: "An educational video explaining the neuroscience behind emotions and how they affect our mental well-being.", Type: "video", Tags: []string{"emotions", "neuroscience", "education", "science"}, URL: "https://www.youtube.com/watch?v=xNY0AAUtH3g"},
	{ID: "8", Title: "Healthy Boundaries in Relationships", Description: "Learn how to establish and maintain healthy boundaries in various relationships to protect your mental health.", Type: "article", Tags: []string{"relationships", "boundaries", "self-care", "communication"}, URL: "https://psychcentral.com/lib/10-way-to-build-and-preserve-better-boundaries/"},
	{ID: "9", Title: "Panic Attack Management Techniques", Description: "Quick techniques to help manage and reduce the intensity of panic attacks when they occur.", Type: "pdf", Tags: []string{"anxiety", "panic attacks", "techniques", "emergency"}, URL: "https://www.anxietycanada.com/sites/default/files/PanicAttack_Worksheet.pdf"},
	{ID: "10", Title: "Mindfulness-Based Stress Reduction (MBSR) Guide", Description: "An introduction to MBSR techniques that have been scientifically proven to reduce stress and anxiety.", Type: "website", Tags: []string{"mbsr", "mindfulness", "stress", "evidence-based"}, URL: "https://www.mindfulnesscds.com/"},
	{ID: "11", Title: "Positive Psychology Exercises", Description: "Evidence-based positive psychology interventions to increase happiness and well-being.", Type: "website", Tags: []string{"positive psychology", "exercises", "happiness", "well-being"}, URL: "https://positivepsychology.com/category/positive-psychology-exercises/"},
	{ID: "12", Title: "Grief and Loss: Coping Strategies", Description: "Guidance on navigating the complex emotions of grief and loss, with practical coping strategies.", Type: "article", Tags: []string{"grief", "loss", "coping", "emotional health"}, URL: "https://www.helpguide.org/articles/grief/coping-with-grief-and-loss.htm"},
}

var helplines = []models.Helpline{
	{Name: "988 Suicide & Crisis Lifeline", Phone: "988", Text: "988", Website: "https://988lifeline.org/", Hours: "24/7", Description: "Call or text 988 for support during a suicidal, mental health, and/or substance use crisis.", Type: "crisis"},
	{Name: "Crisis Text Line", Text: "HOME to 741741", Website: "https://www.crisistextline.org/", Hours: "24/7", Description: "Text HOME to 741741 to connect with a Crisis Counselor for free support during any type of crisis.", Type: "crisis"},
	{Name: "Veterans Crisis Line", Phone: "1-800-273-8255 (Press 1)", Text: "838255", Website: "https://www.veteranscrisisline.net/", Hours: "24/7", Description: "Connects veterans in crisis and their families with qualified responders through a confidential toll-free hotline.", Type: "special"},
	{Name: "SAMHSA's National Helpline", Phone: "1-800-662-4357", Website: "https://www.samhsa.gov/find-help/national-helpline", Hours: "24/7, 365 days a year", Description: "Treatment referral and information service for individuals and families facing mental health and/or substance use disorders.", Type: "mental health"},
	{Name: "National Domestic Violence Hotline", Phone: "1-800-799-7233", Text: "LOVEIS to 22522", Website: "https://www.thehotline.org/", Hours: "24/7", Description: "Provides essential tools and support to help survivors of domestic violence.", Type: "crisis"},
	{Name: "NAMI HelpLine", Phone: "1-800-950-6264", Website: "https://www.nami.org/help", Hours: "Monday through Friday, 10 a.m. – 10 p.m. ET", Description: "Provides information, resource referrals and support to people living with mental health conditions.", Type: "mental health"},
	{Name: "Trevor Project", Phone: "1-866-488-7386", Text: "START to 678678", Website: "https://www.thetrevorproject.org/", Hours: "24/7", Description: "Crisis intervention and suicide prevention services for LGBTQ young people under 25.", Type: "special"},
	{Name: "Substance Abuse Helpline", Phone: "1-844-289-0879", Website: "https://www.drugabuse.gov/drug-topics/treatment", Hours: "24/7", Description: "Free, confidential help for substance use disorders, including information about treatment options.", Type: "substance"},
}

// SearchResources filters the directory. query matches title or
// description case-insensitively, resourceType must match exactly when
// set, and every tag in tags must be present.
func SearchResources(query, resourceType string, tags []string) []models.Resource {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Resource, 0, len(resources))
	for _, r := range resources {
		if q != "" && !strings.Contains(strings.ToLower(r.Title), q) && !strings.Contains(strings.ToLower(r.Description), q) {
			continue
		}
		if resourceType != "" && r.Type != resourceType {
			continue
		}
		if !containsAll(r.Tags, tags) {
			continue
		}
		r.Tags = slices.Clone(r.Tags)
		out = append(out, r)
	}
	return out
}

// ResourceTags returns every tag used in the directory, sorted.
func ResourceTags() []string {
	var all []string
	for _, r := range resources {
		for _, t := range r.Tags {
			if !slices.Contains(all, t) {
				all = append(all, t)
			}
		}
	}
	sort.Strings(all)
	return all
}

// Helplines lists emergency contacts, optionally of a single type.
func Helplines(helplineType string) []models.Helpline {
	if helplineType == "" {
		return slices.Clone(helplines)
	}
	var out []models.Helpline
	for _, h := range helplines {
		if h.Type == helplineType {
			out = append(out, h)
		}
	}
	return out
}

func containsAll(have, want []string) bool {
	for _, w := range want {
		if !slices.Contains(have, w) {
			return false
		}
	}
	return true
}
