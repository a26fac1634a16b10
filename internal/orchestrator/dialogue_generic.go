package orchestrator

import (
	"context"
	"fmt"
)

// taskPlanningDialogue is the fallback branch for any task the specialized
// branches don't recognize. It produces a plan outline, not results.
func taskPlanningDialogue(ctx context.Context, p *producer) (string, string, error) {
	task := p.topic

	p.status("Task Framing", "processing", "Orchestrator is defining the task...")
	if err := p.log(ctx, agentOrchestrator, fmt.Sprintf("Okay team, we have a new request: '%s'. This is complex, so let's break it down methodically. ExpertAgent, what's your initial interpretation of this query? What are the core scientific questions we need to address?", task)); err != nil {
		return "", "", err
	}

	p.status("Methodology Debate", "processing", "Agents are discussing the approach...")
	if err := p.log(ctx, agentExpert, "My interpretation is that the user wants to understand the fundamental process for tackling this problem. The first step is always to define the scope. What are the knowns and unknowns? For instance, what data sources are available and what are their limitations?"); err != nil {
		return "", "", err
	}
	if err := p.log(ctx, agentCritic, "I agree. Before we propose a single step, we must question the premise. Is the user's query based on a sound assumption? Are there alternative interpretations we should consider? For example, if the query is about analyzing data, we must first discuss data quality control, normalization, and potential batch effects. Rushing to analysis is how we get misleading results."); err != nil {
		return "", "", err
	}

	p.status("Action Plan", "processing", "Agents are defining concrete steps...")
	if err := p.log(ctx, agentOrchestrator, "Excellent points. So, our first phase is purely about planning and risk assessment. Let's outline the initial steps for how we would *approach* this, not solve it. Step 1: Clearly define the biological question. Step 2: Identify and validate the necessary input data. Step 3: Debate and select the most appropriate analytical methods, considering the points raised by the Critic. Let's begin by formalizing the biological question."); err != nil {
		return "", "", err
	}

	report := fmt.Sprintf(`### Methodological Approach for: %s

**Objective:** To outline a rigorous and transparent scientific process to address the user's query.

**Phase 1: Scoping and Planning**
1.  **Question Definition:** Collaboratively refine the user's query into a precise, testable scientific question.
2.  **Data Vetting:** Identify the required data types and sources. Establish a protocol for quality control and validation before any analysis is performed.
3.  **Methodological Debate:** Discuss the pros and cons of various analytical tools and approaches relevant to the query. The Scientific Critic will lead a pre-mortem analysis to identify potential pitfalls and biases in each proposed method.`, task)

	chat := "We have outlined a high-level strategic plan for how to approach your query. The focus is on ensuring a rigorous and well-planned scientific process. The plan is now in the 'Results' tab."
	return report, chat, nil
}
