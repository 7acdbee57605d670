// Package engage selects the honeypot persona's next reply. The persona is
// "Amma", a confused, technology-challenged elderly person whose job is to
// keep the scammer talking and asking them for their own details.
//
// All behavior is data: per-category scripted arcs keyed by turn index,
// probe wordings keyed by category and missing intelligence kind, and a
// generic stalling arc for unclassified sessions.
package engage

import (
	"github.com/NightjarHQ/nightjar/pkg/intel"
	"github.com/NightjarHQ/nightjar/pkg/scam"
)

// scriptTurns is the length of every scripted arc. Turn indices past the
// end replay the final entry forever (engagement plateau).
const scriptTurns = 10

// FallbackReply is the category-agnostic stall used when the inbound
// message is empty or unusable. Keeping the conversation alive beats
// returning an error.
const FallbackReply = "Hello? Beta, are you there? My phone is acting up again, I could not read your message. Can you please send it once more?"

// probeMinTurn is the earliest turn at which each kind is worth asking
// for. Phones first; asking for bank details on turn one reads as fake.
var probeMinTurn = map[intel.Kind]int{
	intel.KindPhone:   2,
	intel.KindHandle:  3,
	intel.KindAccount: 4,
	intel.KindLink:    5,
	intel.KindEmail:   6,
}

// categoryArcs holds the ten-turn scripted arc per category. Index 0 is
// the fixed opening reply for a fresh session.
var categoryArcs = map[scam.Category][]string{
	scam.CategoryBankFraud: {
		"Hai Ram, my bank account has a problem? This is very alarming. Who is calling please? What is your name and which branch are you from?",
		"I am very worried now beta. My grandson Rahul handles all my banking. Which account do you mean? I have passbooks somewhere here.",
		"Wait, let me find my reading glasses. You said the account is blocked? But I withdrew money from the ATM just yesterday, how can that be?",
		"I am writing everything down slowly. Bank name, your name... my pen stopped working. Please repeat once more from the beginning?",
		"Beta, my phone is showing some error when I open the bank application. Rahul set it up and he is in office now. What should I press?",
		"Sorry, I had to answer the door, the milk man came. You were saying something about verification? Please start again, I get confused.",
		"My neighbor Mrs. Sharma says her account also had this problem. She went to the branch directly. Should I also just come to the branch tomorrow?",
		"I found my passbook! But the account number here looks different from what you said. Can you check once again on your computer?",
		"Rahul always tells me, Amma, verify first. So before anything, let me note all your details properly - name, department, everything.",
		"Thank you for your patience with an old lady, beta. I have written everything in my diary. Rahul will look at it tonight and call your bank.",
	},
	scam.CategoryUPIFraud: {
		"UPI? Cashback? Oh dear, I barely know how to make calls on this phone. Who is this speaking please? My grandson set up all these payment things.",
		"Beta, which application are you talking about? The blue one or the purple one? Rahul installed both and I always mix them up.",
		"I am opening the phone now... it is asking for some PIN. I wrote it somewhere in my diary. Wait, should I be telling you this? Rahul says never share.",
		"The screen is showing 'collect request' - what does that mean? Am I receiving money or sending? I do not want any mistake with my pension.",
		"My phone shows some QR code thing. My eyes are weak beta, the little square is all blurry. Is there another way to do this?",
		"Arey, the application closed by itself! This phone is too clever for me. Let me restart it, my son says restarting fixes everything.",
		"Mrs. Sharma next door got a cashback last month, she was so happy. How much will I get? And when? I want to tell her also.",
		"It is asking me to enter an amount now. That is strange, beta - if you are sending ME money, why should I type anything?",
		"Rahul messaged me just now asking why my phone is so busy. I told him about the cashback and he wants to check it himself first.",
		"Beta, you have explained so nicely, but these phone payments confuse me too much. Rahul will do it tonight, I have noted everything for him.",
	},
	scam.CategoryPhishing: {
		"An offer for me? How nice! But who is this please? I do not remember giving my number to any company. What is your good name?",
		"My grandson says I should never click things from unknown people. But you sound very professional. Tell me again, what is this offer?",
		"I tried to press the blue text but my thumb is too big for this screen, nothing happened. Is there some other way?",
		"The page is asking for so many details, beta. Name, birthday, card number... why does a free gift need my card number?",
		"My phone says 'connection lost'. This always happens in my building, the network is very poor near the kitchen. Can you resend it?",
		"Wait, I asked my neighbor's boy and he says these offers are sometimes fraud. You are not fraud, no? Prove it to me, beta.",
		"I wrote the website name on paper but my spelling may be wrong. W-W-W dot what? Please spell it letter by letter, slowly.",
		"The link opened! But it is all in small-small letters. Where do I put my details? There are three different boxes showing.",
		"Before I fill anything, Rahul told me to always check the company's details. Give me everything - office number, email, proper address.",
		"Beta, my eyes are paining from all this screen reading. I have noted the full offer in my diary. Rahul will do it for me tonight.",
	},
	scam.CategoryInvestment: {
		"An investment opportunity? My late husband handled all the money matters. Who is this calling? Are you from some bank?",
		"Double the money, you say? My fixed deposit gives so little these days. But beta, how do I know this is not one of those schemes?",
		"My son-in-law works in a bank and he always says, if returns sound too good, ask more questions. So I am asking - how does it work exactly?",
		"Wait, I am noting the numbers down. Fifty thousand becomes one lakh in how many months? My maths is slow, give me a minute.",
		"I have some money in the cupboard from my pension, but Rahul keeps the bank things. What papers will you send me? I want everything written.",
		"Mrs. Sharma's brother lost money in some chit fund, the whole colony talked about it for months. How is yours different, beta?",
		"My CA - actually he is Rahul's friend who does our taxes - he will want to see the company registration. You have that, no?",
		"I told my daughter about this on the phone and she got very excited. She wants to invest also! Where should she call?",
		"OK I am almost convinced, beta. But my money is in the bank and Rahul has the net banking. Let me gather all your details for him.",
		"You have been so patient explaining to an old lady. I have written the whole scheme in my diary. Rahul will transfer after he verifies, promise.",
	},
	scam.CategoryLottery: {
		"I won? Hai Ram! I never win anything, not even the society raffle! Who is this? How did my name come in this lottery?",
		"Twenty-five lakhs! Beta, my heart is beating fast. Let me sit down. Tell me again, slowly - which lottery is this? I do not remember buying a ticket.",
		"I want to tell my daughter but she will not believe me. Is there some certificate or paper which shows I have won? Something official?",
		"You are saying I must pay a fee first? That is strange, beta. If I won the money, can you not take the fee from my prize itself?",
		"Let me find my spectacles and a good pen. I am writing: prize amount, claim office... what was the office address again?",
		"My neighbor says these lottery calls are sometimes fake. I scolded her for spoiling my happiness! But just to be sure - prove it is real, beta?",
		"I could not sleep last night thinking about the prize! I will repair the temple roof and buy Rahul a motorcycle. When does the money come?",
		"The bank was closed today, some holiday. I will go tomorrow morning. Meanwhile tell me everything again, I want my notes to be complete.",
		"Rahul is coming this weekend and he handles all money matters. Let me keep all your details ready so he can finish the claim quickly.",
		"Beta, you have been calling so patiently about my prize. Everything is written in my diary now. Rahul will contact your office and finish it.",
	},
}

// genericArc is the stalling arc for unclassified sessions, three
// variants per turn. The variant is chosen per session, not per turn, so
// a given conversation stays in one voice.
var genericArc = [scriptTurns][]string{
	{
		"Oh my goodness! This is very concerning. Who am I speaking with? Can you please tell me your name and which department you are from?",
		"Hai Ram! This is very alarming news. Please tell me, who is calling? What is your name and employee ID?",
		"Oh dear, this sounds very serious! I am an old woman, I get confused easily. Can you please explain slowly? What is your name?",
	},
	{
		"I am very worried now. My grandson usually handles all this for me. Can you explain once more what has happened?",
		"Beta, I don't understand these things very well. My grandson Rahul handles all my matters. Please explain slowly from the start.",
		"This is so confusing for me. Let me get a pen and paper first. OK, now tell me again, what is the problem?",
	},
	{
		"Oh I see, I see. I am writing down what you are telling me. But my eyes are weak, can you please repeat the details one more time?",
		"Wait wait, let me get my reading glasses. I want to write everything down properly. Start from the beginning please.",
		"I am trying to understand, beta. My hearing is not so good on this phone. Say it once more, slowly?",
	},
	{
		"OK beta, I am trying. But this phone is so complicated. My grandson set it up for me. Tell me exactly, step by step, what I should do?",
		"I found my diary and a pen! Let me note everything. But first, remind me again which office you are calling from?",
		"Achha achha, I understand. But I am confused about one thing - can you explain that last part once more?",
	},
	{
		"Beta, my phone is showing some error. This always happens. Let me restart it... OK done. Where were we?",
		"I am trying but nothing is happening on my phone. Should I try from my computer? Rahul set that up also.",
		"Arey, this is taking so long. My tea has gone cold. OK OK, I am listening, please continue.",
	},
	{
		"Sorry beta, I had to go answer the door. I am back now. So you were saying about this matter... can you start from the beginning? What was your name again?",
		"Beta, I was telling my neighbor about this and she wants to know too. She says the same thing happened to her cousin.",
		"I got disconnected for a moment. Are you still there? I want to make sure I am talking to the right person.",
	},
	{
		"OK OK, I think I am understanding now. But before I do anything, let me note down all your details. I want to keep a record for Rahul.",
		"My grandson says I should always verify before doing anything. How can I check that you are genuine, beta?",
		"Wait, I need to find my spectacles again. Also, is there a reference number or case ID for this? I want to note it.",
	},
	{
		"Beta, I am at my computer now. Rahul set it up for me. But the screen is showing so many things. Guide me slowly?",
		"I found my papers! But something does not match what you told me earlier. Can you check once again?",
		"I am almost done, but my phone asked me to verify something. What should I press, the green button or the red one?",
	},
	{
		"OK beta, I have written everything down. Let me read it back to you to make sure I noted correctly.",
		"Before I do anything else, I want to show all these details to my grandson. Repeat the main points once more?",
		"I am feeling a bit scared about all this. Maybe I should go to the office in person tomorrow. Unless it is truly urgent?",
	},
	{
		"Thank you so much for your patience, beta. You have been very helpful. Rahul will take it from here, I have everything in my diary.",
		"Beta, you have been so kind to help an old lady. Let me save all your details. My grandson will finish this tonight.",
		"OK, I think I understand everything now. I have written it all down and Rahul will handle the rest. Thank you for your time.",
	},
}

// probeWordings asks for a specific missing intelligence kind in the
// category's own vocabulary. The bank_fraud set doubles as the default
// for unclassified sessions.
var probeWordings = map[scam.Category]map[intel.Kind]string{
	scam.CategoryBankFraud: {
		intel.KindPhone:   "Can you give me the bank's helpline number? Or your direct number so my grandson can verify?",
		intel.KindAccount: "Which account are you referring to? Can you tell me the number? I have multiple accounts.",
		intel.KindHandle:  "Should I check through UPI also? What UPI ID should I look for in my transactions?",
		intel.KindLink:    "Is there a secure link on the bank website where I can check my account status?",
		intel.KindEmail:   "Can you send me a confirmation email? I want to have everything in writing. What is your email ID?",
	},
	scam.CategoryUPIFraud: {
		intel.KindPhone:   "What number should I send the payment to? Let me note it down carefully.",
		intel.KindAccount: "Which bank account is linked to this UPI? I want to make sure I am using the right one.",
		intel.KindHandle:  "What is the exact UPI ID I should use? Please spell it out slowly for me.",
		intel.KindLink:    "Is there a link where I can see the cashback details? My grandson always checks links first.",
		intel.KindEmail:   "Can you email me the transaction details? I keep records of everything. What is your email?",
	},
	scam.CategoryPhishing: {
		intel.KindPhone:   "This offer sounds wonderful! But I want to verify first. What is the customer care number?",
		intel.KindAccount: "Where should I enter my details? Which account does the payment go to?",
		intel.KindHandle:  "How do I pay for this? Should I use UPI? What is the payment UPI ID?",
		intel.KindLink:    "Can you send me the link again? My phone couldn't open it properly. Please share it once more.",
		intel.KindEmail:   "Can you send me the offer details on my email? I want to read it carefully. What address will it come from?",
	},
	scam.CategoryInvestment: {
		intel.KindPhone:   "This investment sounds interesting. Can you give me a number my family's advisor can call you on?",
		intel.KindAccount: "Where do I invest? Which bank account should the transfer go to?",
		intel.KindHandle:  "Can I invest through UPI? What UPI ID should I transfer to?",
		intel.KindLink:    "Is there a website where I can read about this scheme? Please share the link.",
		intel.KindEmail:   "Can you send me the investment papers on email? My CA will want to see them. What is your email ID?",
	},
	scam.CategoryLottery: {
		intel.KindPhone:   "Oh my! I won? Who should I contact to claim? Please give me the office number.",
		intel.KindAccount: "Where will the prize money come from? Which account number should I note for my records?",
		intel.KindHandle:  "Can I receive the prize through UPI? Which UPI ID sends the payment?",
		intel.KindLink:    "Is there a website where I can verify my winning ticket? Please share the link.",
		intel.KindEmail:   "Can you email me the winner certificate? I want to show my family! What is your office email?",
	},
}
