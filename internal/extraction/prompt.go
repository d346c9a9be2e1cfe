package extraction

import "strings"

const promptTemplate = `Extract the following information from this resume text and return ONLY a valid JSON object as described below. Do NOT include any explanation, Markdown, or text before or after the JSON. Use null for missing fields.

IMPORTANT: Pay special attention to generating a concise, professional, and complete summary that best represents the candidate's qualifications and experience. The summary should be clear, well-written, and highlight the candidate's most relevant strengths.

Format:
{
  "name": string or null,
  "email": string or null,
  "phone": string or null,
  "skills": array of strings or null,
  "work_experience": string or null,
  "summary": string or null
}

Examples:

Resume:
John Doe
Email: john@example.com
Phone: 123-456-7890
Skills: JavaScript, Python, Java
Experience: Software Engineer at Acme Corp for 5 years
Summary: Experienced developer with a focus on web technologies.

Output:
{
  "name": "John Doe",
  "email": "john@example.com",
  "phone": "123-456-7890",
  "skills": ["JavaScript", "Python", "Java"],
  "work_experience": "Software Engineer at Acme Corp for 5 years",
  "summary": "Experienced developer with a focus on web technologies."
}

Resume:
Jane Smith
Skills: Python
Summary: Recent graduate.

Output:
{
  "name": "Jane Smith",
  "email": null,
  "phone": null,
  "skills": ["Python"],
  "work_experience": null,
  "summary": "Recent graduate."
}

Now, extract the information from this resume:

Resume:
{{RESUME}}`

// BuildPrompt embeds the resume text after the schema and the two worked examples.
func BuildPrompt(resumeText string) string {
	return strings.Replace(promptTemplate, "{{RESUME}}", resumeText, 1)
}
