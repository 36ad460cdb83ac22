package utils

import (
	"fmt"
	"net/smtp"

	"peakform/config"
)

// SendEnrollmentEmail sends an email notification when a user enrolls in a program
func SendEnrollmentEmail(email, userName, programName string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || password == "" {
		return nil // Email not configured
	}

	to := []string{email}

	subject := "Subject: Program Enrollment Confirmation - PeakForm\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">You're in! 💪</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">You have successfully enrolled in:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<p style="font-size: 14px; color: #666666;">Your first course is unlocked and waiting. Complete each course to unlock the next one and work your way through the program.</p>
					<p style="font-size: 14px; color: #999999; text-align: center; margin-top: 30px;">Let's get moving!</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 20px;">The PeakForm Team</p>
				</div>
			</body>
		</html>
	`, userName, programName)

	message := []byte(subject + "\n" + body)
	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message)
	if err != nil {
		fmt.Println("Error sending enrollment email:", err)
		return err
	}

	fmt.Println("Enrollment email sent successfully to", email)
	return nil
}

// SendProgramCompletionEmail congratulates a user who finished every course in a program
func SendProgramCompletionEmail(email, userName, programName string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || password == "" {
		return nil
	}

	to := []string{email}

	subject := "Subject: Program Completed - PeakForm\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">🎉 Congratulations, %s!</h2>
					<p style="font-size: 16px; color: #555555;">You completed every course in:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<p style="font-size: 14px; color: #666666;">That kind of consistency is what results are made of. Check your dashboard for the next program.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 20px;">The PeakForm Team</p>
				</div>
			</body>
		</html>
	`, userName, programName)

	message := []byte(subject + "\n" + body)
	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message)
	if err != nil {
		fmt.Println("Error sending completion email:", err)
		return err
	}

	fmt.Println("Completion email sent successfully to", email)
	return nil
}

// SendDailyDigestEmail reports yesterday's signups and completions to the admin
func SendDailyDigestEmail(adminEmail string, newSignups, completions int64) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || password == "" || adminEmail == "" {
		return nil
	}

	to := []string{adminEmail}

	subject := "Subject: Daily Stats Digest - PeakForm\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Daily Digest</h2>
					<p style="font-size: 16px; color: #555555;">New signups yesterday: <b>%d</b></p>
					<p style="font-size: 16px; color: #555555;">Programs completed yesterday: <b>%d</b></p>
				</div>
			</body>
		</html>
	`, newSignups, completions)

	message := []byte(subject + "\n" + body)
	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message)
	if err != nil {
		fmt.Println("Error sending digest email:", err)
		return err
	}

	return nil
}
