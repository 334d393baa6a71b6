// internal/service/template.go
package service

import (
    "strings"

    "github.com/farmacliq/crm-backend/internal/model"
)

// RenderTemplate substitutes {placeholder} tokens in a campaign message.
func RenderTemplate(template string, data map[string]string) string {
    result := template
    for k, v := range data {
        if v == "" {
            v = "<unknown>"
        }
        result = strings.ReplaceAll(result, "{"+k+"}", v)
    }
    return result
}

// RenderForClient personalizes a campaign message for one audience member.
func RenderForClient(template string, c *model.Client) string {
    return RenderTemplate(template, map[string]string{
        "name": c.Name,
    })
}
