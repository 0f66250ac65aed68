package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# DocSum configuration
version: "1.0"

service:
  # URL the document is posted to as multipart/form-data
  endpoint: "http://localhost:8000/analyze/"
  # Bounds one request including upload and response
  timeout: 120s
  user_agent: "docsum"

analysis:
  # basic | financial
  default_mode: basic

output:
  # text | json | markdown | csv | table
  default_format: text
  # auto | always | never
  color_mode: auto
  # default | high-contrast | minimal
  theme: default
  emoji: true
  verbose: false
`
}

// MinimalSampleConfig returns a configuration with only essential settings
func MinimalSampleConfig() string {
	return `service:
  endpoint: "http://localhost:8000/analyze/"
analysis:
  default_mode: basic
`
}
