package service

import "github.com/noah-isme/ncc-parade-api/internal/models"

// Report skeletons seniors fill in per activity type. Kept server-side so
// every unit files the same structure.
var reportTemplates = map[models.ParadeType]string{
	models.ParadeTypeTheory: `• Topic covered (Specialised / Common / General Awareness):
• Class / syllabus requirement to complete topic:

• Parade conducted by (ANO / PI Staff / Senior):

• Place of instruction:

• Test conducted (if any) – Average marks / performance:

• Observations / remarks:
`,
	models.ParadeTypeDrill: `• Type of drill conducted:
• Place and dress code:

• Parade taken by (ANO / PI Staff / Senior):

• Synchronisation and coordination:

• Execution of commands:

• Areas requiring improvement:

• Overall assessment:
`,
	models.ParadeTypeWeaponTraining: `• Place and dress code:
• Parade taken by (ANO / PI Staff / Senior):

• Weapon handling and posture:

• Cadet discipline during training:

• Observed mistakes / safety concerns:

• Remarks:
`,
	models.ParadeTypePT: `• Type of PT activities conducted:
• Activity and Duration:

• Cadet participation and turnout:

• Physical endurance level observed:

• Injuries / health issues (if any):

• Overall performance:

• Remarks:
`,
	models.ParadeTypeRehearsal: `• Purpose of rehearsal:
• Strength present:

• Presence of ANO / PI Staff / Senior:

• Dress code:

• Coordination between contingents:

• Drill accuracy and alignment:

• Readiness level:

• Observations / remarks:
`,
	models.ParadeTypeCulturalPractice: `• Event / programme being practised (with date):
• Type of performance (song / dance / skit etc.):

• Status (completed / ongoing) and count of items:

• Time required to complete preparation:

• Remarks:
`,
	models.ParadeTypeEvent: `• Event name:
• Guests attended:

• Place and duration of event:

• Cadet discipline and conduct:

• Refreshments served (if any - filled by C category):

• Interaction with guests / public exposure:

• Outcome / impact of the event:

• Remarks:
`,
	models.ParadeTypeAwareness: `• Topic / theme of awareness:
• Guests attended / involved:

• Mode of delivery (talk / rally / demonstration):

• Public response (if any):

• Learning outcome for cadets:

• Remarks:
`,
}

// ReportTemplate returns the skeleton for a parade type, empty when the type
// has no template.
func ReportTemplate(paradeType models.ParadeType) string {
	return reportTemplates[paradeType]
}
