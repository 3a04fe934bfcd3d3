package generation

import "fmt"

const (
	codeSystemPrompt    = "You are an expert software engineer and coding assistant."
	reviewSystemPrompt  = "You are an expert code reviewer and security analyst."
	projectSystemPrompt = "You are an expert full-stack developer who creates complete, production-ready projects."
)

func enhancedPrompt(prompt, language string) string {
	return fmt.Sprintf(`You are an expert software engineer. Generate high-quality, production-ready code based on this request:

REQUEST: %s
LANGUAGE: %s

REQUIREMENTS:
1. Write clean, well-structured, and commented code
2. Include error handling where appropriate
3. Follow best practices for the specified language
4. Make the code modular and reusable
5. Include any necessary imports/dependencies
6. Provide a brief explanation of what the code does

RESPONSE FORMAT:
`+"```%s"+`
[Generated Code Here]
`+"```"+`

EXPLANATION:
[Brief explanation of the code functionality]
`, prompt, language, language)
}

func analysisPrompt(code, language string) string {
	return fmt.Sprintf(`Analyze this %s code for:
1. Potential bugs or errors
2. Code quality and best practices
3. Performance improvements
4. Security vulnerabilities
5. Suggestions for enhancement

CODE:
`+"```%s"+`
%s
`+"```"+`

Provide detailed analysis with specific recommendations.
`, language, language, code)
}

func projectPrompt(description, techStack string) string {
	return fmt.Sprintf(`Create a complete project structure for:
DESCRIPTION: %s
TECH_STACK: %s

Generate:
1. Project folder structure
2. Main application files with code
3. Configuration files (package.json, requirements.txt, etc.)
4. README.md with setup instructions
5. Basic styling/CSS if needed

Provide the response as a JSON structure with:
{
    "project_name": "suggested-project-name",
    "files": {
        "path/to/file.ext": "file content here"
    },
    "setup_instructions": "step by step setup guide"
}
`, description, techStack)
}
