package profile

const identifySystemPrompt = "You are a research assistant who matches people to their online profiles. " +
	"Be conservative: only list profiles that plausibly belong to the named person. Never invent URLs."

// identifyPromptTemplate: name, formatted search results.
const identifyPromptTemplate = `Person: %s

Search results:
%s
From the search results above, list the profiles most likely to belong to this person
(LinkedIn, Twitter/X, GitHub, personal websites, academic pages, blogs).
Use exactly this format for every profile, one numbered entry per profile:

1. URL: <profile url>
   Platform: <one word, e.g. LinkedIn>
   Title: <page title>
   Relevance Score: <number between 0.0 and 1.0>

Order entries from most to least likely. If nothing matches, answer "No profiles found".`

const analyzeSystemPrompt = "You extract factual biographical information from web pages. " +
	"Only report what the text states; leave a section out when the text says nothing about it."

// analyzePromptTemplate: page content.
const analyzePromptTemplate = `Analyze the following profile content and extract the person's details.

Content:
"""
%s
"""

Answer with markdown sections, each starting with a "#" header, in this order:
# Name
# Title
# Bio
# Experience  (one "- " bullet per role, e.g. "- Senior Engineer at Acme, 2019-Present")
# Education   (one "- " bullet per degree, e.g. "- BSc Computer Science, Stanford University, 2010-2014")
# Skills      (comma separated)
# Interests   (comma separated)
# Posts       (one "- " bullet per recent post or notable update)

Omit any section you have no information for.`
