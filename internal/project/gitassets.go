package project

const gitignoreContent = `# Virtual environments
venv/
env/
.env/
.venv/

# Byte-compiled artifacts
__pycache__/
*.py[cod]
*$py.class
*.so
build/
dist/
eggs/
.eggs/
wheels/
*.egg-info/
*.egg

# Logs
*.log
logs/

# Sensitive configuration
*.env
*.env.local
secrets/

# Data
*.db
*.sqlite3
*.sqlite
data/

# Editors
.idea/
.vscode/
*.swp
*.swo
.DS_Store
`

const gitattributesContent = `# Auto detect text files and perform LF normalization
* text=auto

# Documents
*.md       text diff=markdown
*.txt      text
*.rst      text

# Source code
*.py       text diff=python
*.json     text
*.yaml     text
*.yml      text

# Images (binary)
*.png      binary
*.jpg      binary
*.jpeg     binary
*.gif      binary
*.ico      binary

# Archives
*.gz       binary
*.zip      binary
*.7z       binary
`
